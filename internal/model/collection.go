// internal/model/collection.go
package model

import (
    "errors"
    "math"
)

// ErrIDSpaceExhausted is returned when the largest stored id is already math.MaxInt.
var ErrIDSpaceExhausted = errors.New("no identifier left above the current maximum")

// Collection is the ordered list of clientes held by the backing file.
type Collection []Customer

// NextID is max(existing ids) + 1, or 1 for an empty collection.
func (c Collection) NextID() (int, error) {
    max := 0
    for _, cl := range c {
        if id, ok := cl.ID(); ok && id > max {
            max = id
        }
    }
    if max == math.MaxInt {
        return 0, ErrIDSpaceExhausted
    }
    return max + 1, nil
}

// Append assigns the next identifier to cl and adds it at the end.
func (c Collection) Append(cl Customer) (Collection, Customer, error) {
    id, err := c.NextID()
    if err != nil {
        return c, nil, err
    }
    created := cl.WithID(id)
    return append(c, created), created, nil
}

// IndexOf returns the position of the first cliente with the given id, or -1.
func (c Collection) IndexOf(id int) int {
    for i, cl := range c {
        if got, ok := cl.ID(); ok && got == id {
            return i
        }
    }
    return -1
}

// Remove drops the first cliente with the given id.
func (c Collection) Remove(id int) (Collection, Customer, bool) {
    i := c.IndexOf(id)
    if i < 0 {
        return c, nil, false
    }
    removed := c[i]
    out := make(Collection, 0, len(c)-1)
    out = append(out, c[:i]...)
    out = append(out, c[i+1:]...)
    return out, removed, true
}
