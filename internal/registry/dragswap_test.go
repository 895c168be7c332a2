package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSwap(t *testing.T) {
	// 40x10 card at origin; midpoint at (20, 5).
	hover := Rect{Left: 0, Top: 0, Right: 40, Bottom: 10}

	t.Run("ForwardRequiresPassingMidpointPlusThreshold", func(t *testing.T) {
		// Threshold for Y is 5*1.3 = 6.5, for X is 20*1.3 = 26.
		assert.False(t, ShouldSwap(0, 1, hover, Point{X: 20, Y: 6}))
		assert.True(t, ShouldSwap(0, 1, hover, Point{X: 20, Y: 7}))
		assert.True(t, ShouldSwap(0, 1, hover, Point{X: 27, Y: 5}))
	})

	t.Run("BackwardRequiresPassingMidpointMinusThreshold", func(t *testing.T) {
		// Threshold for Y is 5*0.7 = 3.5, for X is 20*0.7 = 14.
		assert.False(t, ShouldSwap(2, 1, hover, Point{X: 20, Y: 4}))
		assert.True(t, ShouldSwap(2, 1, hover, Point{X: 20, Y: 3}))
		assert.True(t, ShouldSwap(2, 1, hover, Point{X: 13, Y: 5}))
	})

	t.Run("DeadZoneAroundMidpoint", func(t *testing.T) {
		center := Point{X: 20, Y: 5}
		assert.False(t, ShouldSwap(0, 1, hover, center))
		assert.False(t, ShouldSwap(2, 1, hover, center))
	})

	t.Run("SameIndexNeverSwaps", func(t *testing.T) {
		assert.False(t, ShouldSwap(1, 1, hover, Point{X: 40, Y: 10}))
	})

	t.Run("EitherAxisSuffices", func(t *testing.T) {
		// Y before its threshold but X past its own.
		assert.True(t, ShouldSwap(0, 1, hover, Point{X: 30, Y: 1}))
	})
}
