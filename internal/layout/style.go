package layout

// LineHeightFactor converts a font size in points to a line advance in page units (mm).
// It is a tuning constant matched to the reference reports, not a typographic rule.
const LineHeightFactor = 0.35

// Style holds the sizes, offsets and colors the engine lays blocks out with.
type Style struct {
	LineHeightFactor float64
	TextColor        Color

	BodySize     float64
	BlockSpacing float64

	// HeadingSizes and HeadingSpacing are indexed by level-1; deeper levels use the last entry.
	HeadingSizes   []float64
	HeadingSpacing []float64

	BulletIndent float64
	BulletGap    float64

	BannerHeight      float64
	BannerGap         float64
	BannerTitleSize   float64
	BannerTitleOffset float64
	BannerFill        Color
	BannerTextColor   Color

	PanelPadding    float64
	PanelInset      float64
	PanelLineGap    float64
	PanelSpaceAfter float64

	RowHeight        float64
	RowFontSize      float64
	RowTextOffset    float64
	StripeFill       Color
	HeaderHeight     float64
	HeaderFontSize   float64
	HeaderTextOffset float64
	HeaderFill       Color
	HeaderTextColor  Color
	CellInset        float64

	FooterSize    float64
	FooterOffset  float64
	FooterReserve float64
	FooterColor   Color
}

// DefaultStyle reproduces the candidate and analytics report look.
func DefaultStyle() Style {
	return Style{
		LineHeightFactor: LineHeightFactor,
		TextColor:        Black,

		BodySize:     12,
		BlockSpacing: 5,

		HeadingSizes:   []float64{16, 14, 12},
		HeadingSpacing: []float64{10, 5, 5},

		BulletIndent: 10,
		BulletGap:    3,

		BannerHeight:      40,
		BannerGap:         20,
		BannerTitleSize:   20,
		BannerTitleOffset: 25,
		BannerFill:        Primary,
		BannerTextColor:   White,

		PanelPadding:    7,
		PanelInset:      10,
		PanelLineGap:    5,
		PanelSpaceAfter: 10,

		RowHeight:        12,
		RowFontSize:      9,
		RowTextOffset:    8,
		StripeFill:       StripeGray,
		HeaderHeight:     15,
		HeaderFontSize:   10,
		HeaderTextOffset: 10,
		HeaderFill:       Primary,
		HeaderTextColor:  White,
		CellInset:        5,

		FooterSize:    10,
		FooterOffset:  20,
		FooterReserve: 10,
		FooterColor:   Muted,
	}
}

func (s Style) lineHeight(size float64) float64 {
	return size * s.LineHeightFactor
}

func (s Style) headingSize(level int) float64 {
	return pickLevel(s.HeadingSizes, level, s.BodySize)
}

func (s Style) headingSpacing(level int) float64 {
	return pickLevel(s.HeadingSpacing, level, s.BlockSpacing)
}

func pickLevel(values []float64, level int, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(values) {
		i = len(values) - 1
	}
	return values[i]
}
