package utils_test

import (
	"encoding/json"
	"math"
	"testing"

	"content-forge/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{7, 7, true},
		{int64(8), 8, true},
		{uint32(3), 3, true},
		{float32(1.5), 1.5, true},
		{json.Number("0.25"), 0.25, true},
		{" 4 ", 4, true},
		{[]byte("5"), 5, true},
		{"0", 0, true},
		{"rare", 0, false},
		{json.Number("x"), 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := utils.ParseFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 2, utils.ToInt(2.9))
	assert.Equal(t, 12, utils.ToInt("12"))
	assert.Equal(t, 1, utils.ToInt("1.5"))
	assert.Equal(t, -3, utils.ToInt(-3.7))
	assert.Equal(t, 0, utils.ToInt("abc"))
	assert.Equal(t, 0, utils.ToInt(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "a", utils.ToString("a"))
	assert.Equal(t, "b", utils.ToString([]byte("b")))
	assert.Equal(t, "10", utils.ToString(10))
	assert.Equal(t, "", utils.ToString(nil))
}

func TestToBool(t *testing.T) {
	assert.True(t, utils.ToBool(true))
	assert.True(t, utils.ToBool(1))
	assert.True(t, utils.ToBool(1.0))
	assert.True(t, utils.ToBool("TRUE"))
	assert.True(t, utils.ToBool(" yes "))
	assert.True(t, utils.ToBool("1"))
	assert.False(t, utils.ToBool(0))
	assert.False(t, utils.ToBool(2))
	assert.False(t, utils.ToBool("no"))
	assert.False(t, utils.ToBool(nil))
}
