package layout

import "fmt"

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Report palette.
var (
	Black      = Color{0, 0, 0}
	White      = Color{255, 255, 255}
	Primary    = Color{59, 130, 246}
	PanelGray  = Color{240, 240, 240}
	StripeGray = Color{248, 248, 248}
	Muted      = Color{128, 128, 128}
)

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
