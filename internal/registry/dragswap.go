package registry

// Rect is a card's bounding box in terminal cells.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Point is a pointer position in terminal cells.
type Point struct {
	X, Y float64
}

// swapThreshold is how far past a hovered card's midpoint the pointer must
// travel before a reorder fires. The dead zone around the midpoint keeps
// cards from oscillating while the pointer sits near the boundary.
const swapThreshold = 0.3

// ShouldSwap decides whether a drag hovering over another card should emit
// a reorder. dragIndex < hoverIndex means the card is moving forward
// (down/right); the pointer must then be past the hovered card's midpoint by
// the threshold on either axis. Moving backward mirrors the check.
func ShouldSwap(dragIndex, hoverIndex int, hover Rect, pointer Point) bool {
	if dragIndex == hoverIndex {
		return false
	}

	middleX := (hover.Right - hover.Left) / 2
	middleY := (hover.Bottom - hover.Top) / 2
	localX := pointer.X - hover.Left
	localY := pointer.Y - hover.Top

	if dragIndex < hoverIndex {
		passedY := localY > middleY*(1+swapThreshold)
		passedX := localX > middleX*(1+swapThreshold)
		return passedY || passedX
	}

	passedY := localY < middleY*(1-swapThreshold)
	passedX := localX < middleX*(1-swapThreshold)
	return passedY || passedX
}
