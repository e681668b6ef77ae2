// internal/model/customer.go
package model

import (
    "encoding/json"
    "math"
    "strings"
)

const (
    FieldID     = "id"
    FieldNombre = "nombre"
)

// Customer is a free-form cliente record. Only "nombre" is required and "id"
// is assigned by the server; every other field is kept as received.
type Customer map[string]any

// ID returns the integer identifier of the cliente, if it has a valid one.
// Values that are not whole numbers or do not fit in an int are rejected.
func (c Customer) ID() (int, bool) {
    switch v := c[FieldID].(type) {
    case int:
        return v, true
    case int64:
        if v < math.MinInt || v > math.MaxInt {
            return 0, false
        }
        return int(v), true
    case float64:
        return floatID(v)
    case json.Number:
        if n, err := v.Int64(); err == nil {
            if n < math.MinInt || n > math.MaxInt {
                return 0, false
            }
            return int(n), true
        }
        // "2.0" and "2e3" are still whole numbers
        if f, err := v.Float64(); err == nil {
            return floatID(f)
        }
    }
    return 0, false
}

// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
func floatID(f float64) (int, bool) {
    if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
        return 0, false
    }
    return int(f), true
}

// HasNombre reports whether the required name field is a string with at
// least one non-blank character.
func (c Customer) HasNombre() bool {
    s, ok := c[FieldNombre].(string)
    return ok && strings.TrimSpace(s) != ""
}

// WithID returns a shallow copy of c carrying the given identifier.
func (c Customer) WithID(id int) Customer {
    out := make(Customer, len(c)+1)
    for k, v := range c {
        out[k] = v
    }
    out[FieldID] = id
    return out
}
