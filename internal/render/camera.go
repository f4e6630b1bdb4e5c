package render

// Camera translates between map cells and screen columns/rows. Each cell is
// CellWidth columns wide so that double-width glyphs line up.
type Camera struct {
	OffsetX    int
	OffsetY    int
	CellWidth  int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, cellWidth, viewW, viewH int) *Camera {
	c := &Camera{CellWidth: max(cellWidth, 1), ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that cell (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/c.CellWidth)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Pan moves the view by (dx, dy) cells.
func (c *Camera) Pan(dx, dy int) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// WorldToScreen converts cell (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.CellWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to a cell.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/c.CellWidth + c.OffsetX, sy + c.OffsetY
}
