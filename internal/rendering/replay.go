package rendering

import (
	"fmt"

	"github.com/jonathan/resume-screener/internal/layout"
)

// Replay opens the first page on s and dispatches every command in order.
func Replay(commands []layout.DrawCommand, s Sink) error {
	s.NewPage()
	for i, cmd := range commands {
		switch c := cmd.(type) {
		case layout.SetFill:
			s.SetFill(c.Color)
		case layout.SetTextColor:
			s.SetTextColor(c.Color)
		case layout.DrawRect:
			s.DrawRect(c.X, c.Y, c.W, c.H)
		case layout.DrawText:
			s.DrawText(c.Text, c.X, c.Y, c.FontSize, c.Bold)
		case layout.NewPage:
			s.NewPage()
		default:
			return &RenderError{Message: fmt.Sprintf("unsupported draw command %T at index %d", cmd, i)}
		}
	}
	return nil
}
