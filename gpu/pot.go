package gpu

import (
	"math/bits"

	"github.com/gogpu/gputypes"
)

// NextPowerOfTwo returns the smallest power of two >= n. It returns 0 for
// n <= 0 and n itself when n already is a power of two.
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}

// PotSize returns the power-of-two texture extent for a w×h image.
func PotSize(w, h int) gputypes.Extent3D {
	return gputypes.NewExtent2D(uint32(NextPowerOfTwo(w)), uint32(NextPowerOfTwo(h)))
}
