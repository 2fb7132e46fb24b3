package tower

// Camera keeps the body at or below a fixed threshold line by scrolling the
// world down instead of letting the body climb on screen.
type Camera struct {
	threshold float64 // Y of the threshold line
	scrolled  float64 // Cumulative scroll distance, never decreases
}

// NewCamera places the threshold line at fraction of the viewport height.
func NewCamera(viewportHeight, fraction float64) Camera {
	return Camera{threshold: viewportHeight * fraction}
}

// Threshold returns the y-coordinate of the threshold line.
func (c *Camera) Threshold() float64 {
	return c.threshold
}

// Scrolled returns the cumulative scroll distance.
func (c *Camera) Scrolled() float64 {
	return c.scrolled
}

// Update scrolls the world if the body rose above the threshold: the body is
// pinned back to the line, every platform moves down by the same distance,
// and the field is pruned and refilled in the same tick.
// Returns the distance scrolled (0 if the camera stayed put).
func (c *Camera) Update(b *Body, f *Field, viewportHeight float64) float64 {
	if b.Y >= c.threshold {
		return 0
	}

	d := c.threshold - b.Y
	c.scrolled += d
	b.Y = c.threshold

	f.ScrollBy(d)
	f.PruneAndGenerate(viewportHeight)

	return d
}
