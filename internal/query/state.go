// Package query holds the filter and pagination state that drives list fetches.
package query

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Well-known parameter names shared with the REST backend.
const (
	FieldPage         = "page"
	FieldItemsPerPage = "items_per_page"
	FieldKeyword      = "keyword"
	FieldFromDate     = "from_date"
	FieldToDate       = "to_date"

	// DateLayout is the wire format of from_date/to_date.
	DateLayout = "2006-01-02"

	DefaultItemsPerPage = 10
)

// State is an immutable filter+pagination value. Page is zero based.
type State struct {
	Page         int
	ItemsPerPage int
	fields       map[string]string
}

// New returns the default state for the given page size.
func New(itemsPerPage int) State {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return State{ItemsPerPage: itemsPerPage}
}

// Field returns the value of a filter field, or "" when unset.
func (s State) Field(name string) string {
	return s.fields[name]
}

// Fields returns a copy of the filter fields.
func (s State) Fields() map[string]string {
	out := make(map[string]string, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// With sets one field. Any field other than page resets the page to 0; an
// empty value removes the filter.
func (s State) With(name, value string) State {
	switch name {
	case FieldPage:
		n, _ := strconv.Atoi(value)
		return s.WithPage(n)
	case FieldItemsPerPage:
		n, _ := strconv.Atoi(value)
		return s.WithItemsPerPage(n)
	}
	next := s.clone()
	if value == "" {
		delete(next.fields, name)
	} else {
		next.fields[name] = value
	}
	next.Page = 0
	return next
}

// WithDateRange sets from_date and to_date in a single transition. Zero times
// clear the corresponding bound.
func (s State) WithDateRange(from, to time.Time) State {
	next := s.clone()
	setDate(next.fields, FieldFromDate, from)
	setDate(next.fields, FieldToDate, to)
	next.Page = 0
	return next
}

func setDate(fields map[string]string, name string, t time.Time) {
	if t.IsZero() {
		delete(fields, name)
		return
	}
	fields[name] = t.Format(DateLayout)
}

// WithPage changes only the page.
func (s State) WithPage(page int) State {
	if page < 0 {
		page = 0
	}
	next := s.clone()
	next.Page = page
	return next
}

// WithItemsPerPage changes the page size and resets the page.
func (s State) WithItemsPerPage(n int) State {
	if n <= 0 {
		return s
	}
	next := s.clone()
	next.ItemsPerPage = n
	next.Page = 0
	return next
}

// Reset returns the default state, keeping the page size.
func (s State) Reset() State {
	return New(s.ItemsPerPage)
}

// Values renders the state as request parameters.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set(FieldPage, strconv.Itoa(s.Page))
	v.Set(FieldItemsPerPage, strconv.Itoa(s.itemsPerPage()))
	for k, val := range s.fields {
		v.Set(k, val)
	}
	return v
}

// Key is a canonical string for the state; equal states share a key.
func (s State) Key() string {
	return s.Values().Encode()
}

// Equal reports whether both states describe the same fetch.
func (s State) Equal(o State) bool {
	if s.Page != o.Page || s.itemsPerPage() != o.itemsPerPage() || len(s.fields) != len(o.fields) {
		return false
	}
	for k, v := range s.fields {
		if ov, ok := o.fields[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Pages returns how many pages a total row count spans.
func (s State) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(s.itemsPerPage())))
}

// Names returns the set filter names in sorted order.
func (s State) Names() []string {
	names := make([]string, 0, len(s.fields))
	for k := range s.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Parse builds a state from request parameters on top of defaults. Only
// names in allowed are accepted as filters; nil allows any.
func Parse(values url.Values, defaults State, allowed ...string) State {
	s := defaults.clone()
	if n, err := strconv.Atoi(values.Get(FieldItemsPerPage)); err == nil && n > 0 {
		s.ItemsPerPage = n
	}
	if n, err := strconv.Atoi(values.Get(FieldPage)); err == nil && n >= 0 {
		s.Page = n
	}
	accept := func(string) bool { return true }
	if len(allowed) > 0 {
		set := make(map[string]struct{}, len(allowed))
		for _, a := range allowed {
			set[a] = struct{}{}
		}
		accept = func(name string) bool {
			_, ok := set[name]
			return ok
		}
	}
	for name, vals := range values {
		if name == FieldPage || name == FieldItemsPerPage || !accept(name) {
			continue
		}
		if v := strings.TrimSpace(firstOf(vals)); v != "" {
			s.fields[name] = v
		}
	}
	return s
}

func firstOf(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func (s State) itemsPerPage() int {
	if s.ItemsPerPage <= 0 {
		return DefaultItemsPerPage
	}
	return s.ItemsPerPage
}

func (s State) clone() State {
	next := State{Page: s.Page, ItemsPerPage: s.itemsPerPage(), fields: make(map[string]string, len(s.fields)+1)}
	for k, v := range s.fields {
		next.fields[k] = v
	}
	return next
}
