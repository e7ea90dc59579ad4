package session

// Cursor is the navigation position within an image collection. Next and Prev
// clamp at the collection bounds without wrapping; only Goto can fail.
// Moving the cursor never touches marking state.
type Cursor struct {
	current int
	size    int
}

// NewCursor creates a cursor over a collection of the given size, positioned
// at the first image
func NewCursor(size int) *Cursor {
	return &Cursor{size: size}
}

// Current returns the current ordinal
func (c *Cursor) Current() int {
	return c.current
}

// Next advances by one image, clamping at the last
func (c *Cursor) Next() {
	if c.current < c.size-1 {
		c.current++
	}
}

// Prev moves back one image, clamping at the first
func (c *Cursor) Prev() {
	if c.current > 0 {
		c.current--
	}
}

// Goto jumps to the given ordinal
func (c *Cursor) Goto(ordinal int) error {
	if ordinal < 0 || ordinal >= c.size {
		return IndexError{Ordinal: ordinal, Size: c.size}
	}
	c.current = ordinal
	return nil
}
