package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ParseInt converts various types to int64 using explicit type switching.
// It handles integer types, integral floats, and numeric strings.
func ParseInt(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int64(v), nil
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", val)
	}
}

// ParseInt32 is ParseInt bounded to the int32 range.
func ParseInt32(val any) (int32, error) {
	i, err := ParseInt(val)
	if err != nil {
		return 0, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("value %d overflows int32", i)
	}
	return int32(i), nil
}

// ToString converts various types to string.
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

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		i, _ := ParseInt(v)
		return i == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}

// ParseDate converts a calendar date to midnight UTC. It accepts time values,
// TOML local dates and datetimes, and strings in YYYY-MM-DD or RFC 3339 form.
func ParseDate(val any) (time.Time, error) {
	var t time.Time
	switch v := val.(type) {
	case time.Time:
		t = v
	case toml.LocalDate:
		t = v.AsTime(time.UTC)
	case toml.LocalDateTime:
		t = v.AsTime(time.UTC)
	case string:
		s := strings.TrimSpace(v)
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, s)
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("value %q is not a date", v)
		}
		t = parsed
	default:
		return time.Time{}, fmt.Errorf("value of type %T is not a date", val)
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
}
