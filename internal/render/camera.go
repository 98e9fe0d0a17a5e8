package render

// Camera maps world coordinates to screen pixels with pan and zoom.
type Camera struct {
	OffX float64
	OffY float64
	Zoom float64
}

// NewCamera returns a camera at the origin with 1:1 zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1.0}
}

// WorldToScreen projects a world position into screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return (x - c.OffX) * c.Zoom, (y - c.OffY) * c.Zoom
}

// ScreenToWorld inverts the projection.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx/c.Zoom + c.OffX, sy/c.Zoom + c.OffY
}

// Pan shifts the camera by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.OffX += dx / c.Zoom
	c.OffY += dy / c.Zoom
}

// ZoomAt scales the zoom by factor, keeping the world point under the
// given screen position fixed.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom *= factor
	if c.Zoom < 0.25 {
		c.Zoom = 0.25
	}
	if c.Zoom > 8.0 {
		c.Zoom = 8.0
	}
	c.OffX = wx - sx/c.Zoom
	c.OffY = wy - sy/c.Zoom
}
