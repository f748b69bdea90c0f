package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVND(t *testing.T) {
	assert.Equal(t, "0 ₫", VND(0))
	assert.Equal(t, "950 ₫", VND(950))
	assert.Equal(t, "450.000 ₫", VND(450000))
	assert.Equal(t, "12.500.000 ₫", VND(12500000))
}
