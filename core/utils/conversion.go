package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloat reads a loosely typed seed value as a number. Seeds decoded from YAML or
// JSON carry numbers as float64, ints or json.Number, and sometimes as quoted strings.
// The bool is false for nil, NaN, infinities and anything that is not numeric.
func ParseFloat(val any) (float64, bool) {
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return ParseFloat(string(v))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToFloat returns ParseFloat's value, 0 when the input is not numeric.
func ToFloat(val any) float64 {
	f, _ := ParseFloat(val)
	return f
}

// ToInt truncates ToFloat toward zero.
func ToInt(val any) int {
	return int(ToFloat(val))
}

// ToString renders a seed value. nil becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool reads a seed flag: true, 1 and the strings "1", "true" and "yes" in any case.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes":
			return true
		}
		return false
	case []byte:
		return ToBool(string(v))
	default:
		f, ok := ParseFloat(v)
		return ok && f == 1
	}
}
