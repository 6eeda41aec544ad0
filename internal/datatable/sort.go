package datatable

import (
	"cmp"
	"math"
	"math/big"
	"reflect"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the active sort. An empty Key keeps insertion order.
type SortState struct {
	Key string
	Dir Direction
}

// Toggle returns the state after clicking the header for key:
// the active key flips direction, any other key starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key && s.Dir != Desc {
		return SortState{Key: key, Dir: Desc}
	}
	return SortState{Key: key, Dir: Asc}
}

// Sort returns a stably sorted copy of records.
func Sort(records []Record, s SortState) []Record {
	if s.Key == "" {
		return records
	}
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		av, _ := a.Value(s.Key)
		bv, _ := b.Value(s.Key)
		c := Compare(av, bv)
		if s.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two raw field values ascending. Nil sorts first.
// Numbers (including decimals) compare numerically, times chronologically,
// and everything else by its display text.
func Compare(a, b any) int {
	aNil, bNil := isNil(a), isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}

	if ad, ok := toDecimal(a); ok {
		if bd, ok := toDecimal(b); ok {
			return ad.Cmp(bd)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return cmp.Compare(toText(a), toText(b))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// toDecimal converts numeric values to a decimal for exact comparison.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return fromUint(uint64(n)), true
	case uint8:
		return fromUint(uint64(n)), true
	case uint16:
		return fromUint(uint64(n)), true
	case uint32:
		return fromUint(uint64(n)), true
	case uint64:
		return fromUint(n), true
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	}
	return decimal.Decimal{}, false
}

func fromUint(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}

// fromFloat rejects NaN and infinities, which decimal cannot represent.
func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}
