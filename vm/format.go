package vm

import (
	"fmt"
	"strconv"
)

// formatNum renders a float64 the way C's printf("%g", ...) does: six
// significant digits with trailing zeros dropped, falling back to
// exponent notation when the exponent is below -4 or at least 6.
func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'g', 6, 64)
}

// formatPtr renders an object reference as the source's
// printf("[%s %p]", kind, obj) did, using Go's %p for the address.
func formatPtr(kind string, obj Obj) string {
	return fmt.Sprintf("[%s %p]", kind, obj)
}
