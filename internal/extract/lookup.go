package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"
)

// The lookup helpers below never fail: a missing path or a value of the
// wrong JSON type yields nil.

func lookupString(r gjson.Result, path string) *string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

// lookupInt accepts JSON integers only; 1.5 or "1" are absent.
func lookupInt(r gjson.Result, path string) *int64 {
	v := r.Get(path)
	if v.Type != gjson.Number || strings.ContainsAny(v.Raw, ".eE") {
		return nil
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// lookupFloat accepts a JSON number or a string holding one.
func lookupFloat(r gjson.Result, path string) *float64 {
	v := r.Get(path)

	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func lookupObject(r gjson.Result, path string) (gjson.Result, bool) {
	v := r.Get(path)
	return v, v.IsObject()
}

func lookupArray(r gjson.Result, path string) (gjson.Result, bool) {
	v := r.Get(path)
	return v, v.IsArray()
}

// unifiedTime parses free-form date text. Inputs without a zone are UTC.
// Text that parses without a year ("12/31", "3:04") counts as unparseable.
func unifiedTime(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() == 0 {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// unifiedTimestamp returns the Unix time for raw, or nil.
func unifiedTimestamp(raw *string) *int64 {
	t, ok := unifiedTime(raw)
	if !ok {
		return nil
	}
	ts := t.Unix()
	return &ts
}

// unifiedDate returns the UTC calendar date of raw as YYYYMMDD, or nil.
func unifiedDate(raw *string) *string {
	t, ok := unifiedTime(raw)
	if !ok {
		return nil
	}
	d := t.Format("20060102")
	return &d
}
