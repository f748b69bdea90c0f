package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithResetsPageForFilterFields(t *testing.T) {
	base := New(10).WithPage(3)
	require.Equal(t, 3, base.Page)

	for _, name := range []string{FieldKeyword, FieldFromDate, FieldToDate, "category_id"} {
		next := base.With(name, "x")
		assert.Equal(t, 0, next.Page, name)
		assert.Equal(t, "x", next.Field(name))
	}
}

func TestWithPagePreservesFilters(t *testing.T) {
	s := New(10).With(FieldKeyword, "abc").WithPage(2)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, "abc", s.Field(FieldKeyword))

	viaField := New(10).With(FieldKeyword, "abc").With(FieldPage, "4")
	assert.Equal(t, 4, viaField.Page)
	assert.Equal(t, "abc", viaField.Field(FieldKeyword))
}

func TestWithItemsPerPageResetsPage(t *testing.T) {
	s := New(10).WithPage(5).WithItemsPerPage(25)
	assert.Equal(t, 0, s.Page)
	assert.Equal(t, 25, s.ItemsPerPage)

	unchanged := s.WithPage(2).WithItemsPerPage(0)
	assert.Equal(t, 2, unchanged.Page)
	assert.Equal(t, 25, unchanged.ItemsPerPage)

	viaField := New(10).WithPage(3).With(FieldItemsPerPage, "50")
	assert.Equal(t, 0, viaField.Page)
	assert.Equal(t, 50, viaField.ItemsPerPage)
}

func TestEmptyValueClearsFilter(t *testing.T) {
	s := New(10).With(FieldKeyword, "abc").With(FieldKeyword, "")
	assert.Equal(t, "", s.Field(FieldKeyword))
	assert.Empty(t, s.Names())
}

func TestStateIsImmutable(t *testing.T) {
	a := New(10).With(FieldKeyword, "one")
	b := a.With(FieldKeyword, "two")
	assert.Equal(t, "one", a.Field(FieldKeyword))
	assert.Equal(t, "two", b.Field(FieldKeyword))

	fields := b.Fields()
	fields[FieldKeyword] = "mutated"
	assert.Equal(t, "two", b.Field(FieldKeyword))
}

func TestWithDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	s := New(10).WithPage(2).WithDateRange(from, to)
	assert.Equal(t, 0, s.Page)
	assert.Equal(t, "2024-03-01", s.Field(FieldFromDate))
	assert.Equal(t, "2024-03-31", s.Field(FieldToDate))

	cleared := s.WithDateRange(time.Time{}, to)
	assert.Equal(t, "", cleared.Field(FieldFromDate))
	assert.Equal(t, "2024-03-31", cleared.Field(FieldToDate))
}

func TestValuesAndParseRoundTrip(t *testing.T) {
	s := New(20).With(FieldKeyword, "pin").With("sub_category_id", "sc1").WithPage(1)
	v := s.Values()
	assert.Equal(t, "1", v.Get(FieldPage))
	assert.Equal(t, "20", v.Get(FieldItemsPerPage))
	assert.Equal(t, "pin", v.Get(FieldKeyword))

	parsed := Parse(v, New(10))
	assert.True(t, parsed.Equal(s))
	assert.Equal(t, s.Key(), parsed.Key())
}

func TestParseRestrictsFilters(t *testing.T) {
	v := map[string][]string{"keyword": {"a"}, "evil": {"x"}, "page": {"-3"}}
	s := Parse(v, New(10), FieldKeyword)
	assert.Equal(t, "a", s.Field(FieldKeyword))
	assert.Equal(t, "", s.Field("evil"))
	assert.Equal(t, 0, s.Page)
}

func TestResetKeepsPageSize(t *testing.T) {
	s := New(25).With(FieldKeyword, "a").WithPage(3).Reset()
	assert.True(t, s.Equal(New(25)))
}

func TestPages(t *testing.T) {
	s := New(10)
	assert.Equal(t, 4, s.Pages(35))
	assert.Equal(t, 1, s.Pages(10))
	assert.Equal(t, 0, s.Pages(0))
	assert.Equal(t, 2, State{}.Pages(11))
}
