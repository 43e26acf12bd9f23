package layout

// DrawCommand is one instruction for a rendering sink. Later commands overlay earlier ones on a page.
type DrawCommand interface {
	drawCommand()
}

// SetFill sets the fill color for subsequent rectangles.
type SetFill struct {
	Color Color
}

// SetTextColor sets the color for subsequent text.
type SetTextColor struct {
	Color Color
}

// DrawRect fills a rectangle with the current fill color.
type DrawRect struct {
	X, Y, W, H float64
}

// DrawText draws one line of text with its baseline at Y.
type DrawText struct {
	Text     string
	X, Y     float64
	FontSize float64
	Bold     bool
}

// NewPage ends the current page. The first page of a document is implicit.
type NewPage struct{}

func (SetFill) drawCommand()      {}
func (SetTextColor) drawCommand() {}
func (DrawRect) drawCommand()     {}
func (DrawText) drawCommand()     {}
func (NewPage) drawCommand()      {}

// PageCount returns the number of pages a command sequence produces.
func PageCount(commands []DrawCommand) int {
	pages := 1
	for _, c := range commands {
		if _, ok := c.(NewPage); ok {
			pages++
		}
	}
	return pages
}
