package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ResultSet is a fully materialized query result.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result has no rows.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// Row maps column names to driver values. Lookups report false when the
// column is absent, NULL, or cannot be converted to the requested type.
type Row map[string]any

// NewRow builds a Row from parallel column and value slices.
func NewRow(columns []string, values []any) Row {
	r := make(Row, len(columns))
	for i, c := range columns {
		if i < len(values) {
			r[c] = values[i]
		}
	}
	return r
}

func (r Row) lookup(name string) (any, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r Row) String(name string) (string, bool) {
	v, ok := r.lookup(name)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}

// Int64 accepts integer columns and integral text. Fractional values are rejected.
func (r Row) Int64(name string) (int64, bool) {
	v, ok := r.lookup(name)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int64(t), true
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Decimal decodes numeric columns without losing precision, for SUM results
// that drivers may hand back as text or floats.
func (r Row) Decimal(name string) (decimal.Decimal, bool) {
	v, ok := r.lookup(name)
	if !ok {
		return decimal.Zero, false
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case int64:
		return decimal.NewFromInt(t), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(t)))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
