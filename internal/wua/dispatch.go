package wua

import (
	"fmt"

	"github.com/go-ole/go-ole"
)

// itemDispatch returns the object held by a collection Item variant. A variant
// that does not hold an object is an error rather than a skipped item, so a
// collection is never silently shortened.
func itemDispatch(v *ole.VARIANT, what string, i int) (*ole.IDispatch, error) {
	d := v.ToIDispatch()
	if d == nil {
		return nil, fmt.Errorf("%s %d: not an object (vt=%d)", what, i, v.VT)
	}
	return d, nil
}
