package layout

import (
	"fmt"
	"math"
)

// Footer is drawn in muted text at the bottom of every page. Callers supply any date text themselves.
type Footer struct {
	Left  string
	Right string
}

// Cursor is the position of the next block during one layout pass.
type Cursor struct {
	Page int
	Y    float64
}

// Engine lays out block sequences into draw commands. It keeps no per-document
// state, so one Engine can serve any number of Layout calls.
type Engine struct {
	measurer     Measurer
	style        Style
	footer       *Footer
	repeatHeader bool
	rejectEmpty  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStyle replaces DefaultStyle.
func WithStyle(s Style) Option {
	return func(e *Engine) { e.style = s }
}

// WithFooter draws f on every page and reserves Style.FooterReserve above it.
func WithFooter(f Footer) Option {
	return func(e *Engine) { e.footer = &f }
}

// WithRepeatTableHeader re-draws the most recent table header when a page break
// lands between two rows of the same table. Off by default.
func WithRepeatTableHeader(on bool) Option {
	return func(e *Engine) { e.repeatHeader = on }
}

// WithRejectEmpty makes Layout fail with ErrEmptyDocument for a zero-block input
// instead of producing a single empty page.
func WithRejectEmpty() Option {
	return func(e *Engine) { e.rejectEmpty = true }
}

// New creates an Engine that measures text with m.
func New(m Measurer, opts ...Option) *Engine {
	e := &Engine{measurer: m, style: DefaultStyle()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// placement is a measured block: its height, and how to draw it once its top is known.
type placement struct {
	height       float64
	keepWithNext bool
	bleed        bool
	spacer       bool
	header       bool
	row          bool
	draw         func(p *pass, top float64)
}

type footerPlan struct {
	left   string
	right  string
	rightX float64
	y      float64
}

type pass struct {
	geom    PageGeometry
	style   Style
	footer  *footerPlan
	reserve float64
	cursor  Cursor
	fresh   bool
	out     []DrawCommand
}

// Layout measures every block, then places them top to bottom, starting a new page
// whenever the next block would cross the bottom limit. Blocks are never split; a
// block taller than a whole page is placed on a fresh page as is. Measurement errors
// are returned unchanged.
func (e *Engine) Layout(blocks []Block, geom PageGeometry) ([]DrawCommand, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if len(blocks) == 0 && e.rejectEmpty {
		return nil, ErrEmptyDocument
	}

	p := &pass{
		geom:   geom,
		style:  e.style,
		cursor: Cursor{Y: geom.Margin},
		fresh:  true,
	}

	if e.footer != nil {
		fp, err := e.measureFooter(geom)
		if err != nil {
			return nil, err
		}
		p.footer = fp
		p.reserve = e.style.FooterReserve
	}

	// Measure phase: nothing is emitted until every height is known.
	placements := make([]placement, 0, len(blocks))
	for _, b := range blocks {
		pl, err := e.measure(b, geom)
		if err != nil {
			return nil, err
		}
		placements = append(placements, pl)
	}

	// Draw phase.
	p.emit(SetTextColor{Color: e.style.TextColor})
	var header *placement
	for i := range placements {
		pl := &placements[i]
		switch {
		case pl.spacer:
			if !p.fresh {
				p.cursor.Y += pl.height
			}
			continue
		case pl.header:
			header = pl
		case pl.row:
		default:
			header = nil
		}

		need := pl.height
		if pl.keepWithNext {
			if next := nextPlacement(placements, i); next != nil {
				if combined := need + next.height; combined <= p.capacity() {
					need = combined
				}
			}
		}

		if !p.fresh && p.cursor.Y+need > p.limit() {
			p.newPage()
			if pl.row && e.repeatHeader && header != nil {
				p.place(header)
			}
		}
		p.place(pl)
	}
	p.finishPage()

	return p.out, nil
}

func nextPlacement(placements []placement, i int) *placement {
	for j := i + 1; j < len(placements); j++ {
		if !placements[j].spacer {
			return &placements[j]
		}
	}
	return nil
}

func (p *pass) emit(cmds ...DrawCommand) {
	p.out = append(p.out, cmds...)
}

// limit is the lowest y a block may reach on the current page.
func (p *pass) limit() float64 {
	return p.geom.Height - p.geom.Margin - p.reserve
}

// capacity is the usable height of a fresh page.
func (p *pass) capacity() float64 {
	return p.limit() - p.geom.Margin
}

func (p *pass) place(pl *placement) {
	top := p.cursor.Y
	if pl.bleed && p.fresh {
		top = 0
	}
	pl.draw(p, top)
	p.cursor.Y = top + pl.height
	p.fresh = false
}

func (p *pass) newPage() {
	p.finishPage()
	p.emit(NewPage{})
	p.cursor.Page++
	p.cursor.Y = p.geom.Margin
	p.fresh = true
}

func (p *pass) finishPage() {
	if p.footer == nil {
		return
	}
	size := p.style.FooterSize
	p.emit(SetTextColor{Color: p.style.FooterColor})
	if p.footer.left != "" {
		p.emit(DrawText{Text: p.footer.left, X: p.geom.Margin, Y: p.footer.y, FontSize: size})
	}
	if p.footer.right != "" {
		p.emit(DrawText{Text: p.footer.right, X: p.footer.rightX, Y: p.footer.y, FontSize: size})
	}
	p.emit(SetTextColor{Color: p.style.TextColor})
}

func (e *Engine) measureFooter(geom PageGeometry) (*footerPlan, error) {
	fp := &footerPlan{
		left:  e.footer.Left,
		right: e.footer.Right,
		y:     geom.Height - e.style.FooterOffset,
	}
	if fp.right != "" {
		w, err := e.measurer.MeasureWidth(fp.right, Font{Size: e.style.FooterSize})
		if err != nil {
			return nil, err
		}
		fp.rightX = geom.Width - geom.Margin - w
	}
	return fp, nil
}

func (e *Engine) measure(b Block, geom PageGeometry) (placement, error) {
	s := e.style
	width := geom.ContentWidth()
	left := geom.Margin

	switch b := b.(type) {
	case Heading:
		font := Font{Size: s.headingSize(b.Level), Bold: true}
		pl, err := e.wrapped(b.Text, font, left, width, s.headingSpacing(b.Level))
		if err != nil {
			return placement{}, err
		}
		pl.keepWithNext = true
		return pl, nil

	case Paragraph:
		return e.wrapped(b.Text, Font{Size: s.BodySize}, left, width, s.BlockSpacing)

	case LabeledValue:
		return e.wrapped(b.Label+": "+b.Value, Font{Size: s.BodySize}, left, width, s.BlockSpacing)

	case BulletList:
		return e.bullets(b, left, width)

	case Rect:
		h := math.Max(0, b.Height)
		fill := b.Fill
		return placement{
			height: h,
			draw: func(p *pass, top float64) {
				p.emit(SetFill{Color: fill}, DrawRect{X: left, Y: top, W: width, H: h})
			},
		}, nil

	case TableHeader:
		cells, columns := b.Cells, b.Columns
		return placement{
			height:       s.HeaderHeight,
			header:       true,
			keepWithNext: true,
			draw: func(p *pass, top float64) {
				p.emit(
					SetFill{Color: s.HeaderFill},
					DrawRect{X: left, Y: top, W: width, H: s.HeaderHeight},
					SetTextColor{Color: s.HeaderTextColor},
				)
				for i, cell := range cells {
					p.emit(DrawText{
						Text:     cell,
						X:        s.columnX(columns, i, len(cells), left, width),
						Y:        top + s.HeaderTextOffset,
						FontSize: s.HeaderFontSize,
					})
				}
				p.emit(SetTextColor{Color: s.TextColor})
			},
		}, nil

	case TableRow:
		cells, columns, striped := b.Cells, b.Columns, b.Striped
		return placement{
			height: s.RowHeight,
			row:    true,
			draw: func(p *pass, top float64) {
				if striped {
					p.emit(SetFill{Color: s.StripeFill}, DrawRect{X: left, Y: top, W: width, H: s.RowHeight})
				}
				for i, cell := range cells {
					p.emit(DrawText{
						Text:     cell,
						X:        s.columnX(columns, i, len(cells), left, width),
						Y:        top + s.RowTextOffset,
						FontSize: s.RowFontSize,
					})
				}
			},
		}, nil

	case Banner:
		return e.banner(b, geom)

	case Panel:
		return e.panel(b, left, width)

	case Spacer:
		return placement{height: math.Max(0, b.Height), spacer: true}, nil

	default:
		return placement{}, fmt.Errorf("layout: unsupported block type %T", b)
	}
}

// wrapped measures text wrapped to width and draws it line by line below the top.
func (e *Engine) wrapped(text string, font Font, x, width, spaceAfter float64) (placement, error) {
	lines, err := Wrap(e.measurer, text, font, width)
	if err != nil {
		return placement{}, err
	}
	lh := e.style.lineHeight(font.Size)
	return placement{
		height: float64(len(lines))*lh + spaceAfter,
		draw: func(p *pass, top float64) {
			drawLines(p, lines, font, x, top, lh)
		},
	}, nil
}

func drawLines(p *pass, lines []string, font Font, x, top, lh float64) {
	for i, line := range lines {
		if line == "" {
			continue
		}
		p.emit(DrawText{Text: line, X: x, Y: top + float64(i+1)*lh, FontSize: font.Size, Bold: font.Bold})
	}
}

func (e *Engine) bullets(b BulletList, left, width float64) (placement, error) {
	s := e.style
	if len(b.Items) == 0 {
		return placement{draw: func(*pass, float64) {}}, nil
	}

	font := Font{Size: s.BodySize}
	lh := s.lineHeight(font.Size)
	x := left + s.BulletIndent

	groups := make([][]string, 0, len(b.Items))
	height := s.BlockSpacing
	for _, item := range b.Items {
		lines, err := Wrap(e.measurer, "• "+item, font, width-s.BulletIndent)
		if err != nil {
			return placement{}, err
		}
		groups = append(groups, lines)
		height += float64(len(lines))*lh + s.BulletGap
	}

	return placement{
		height: height,
		draw: func(p *pass, top float64) {
			y := top
			for _, lines := range groups {
				drawLines(p, lines, font, x, y, lh)
				y += float64(len(lines))*lh + s.BulletGap
			}
		},
	}, nil
}

func (e *Engine) banner(b Banner, geom PageGeometry) (placement, error) {
	s := e.style
	h := b.Height
	if h <= 0 {
		h = s.BannerHeight
	}
	font := Font{Size: s.BannerTitleSize, Bold: true}
	lines, err := Wrap(e.measurer, b.Title, font, geom.ContentWidth())
	if err != nil {
		return placement{}, err
	}
	lh := s.lineHeight(font.Size)
	offset := s.BannerTitleOffset
	if s.BannerHeight > 0 {
		offset = h * s.BannerTitleOffset / s.BannerHeight
	}

	return placement{
		height: h + s.BannerGap,
		bleed:  true,
		draw: func(p *pass, top float64) {
			p.emit(
				SetFill{Color: s.BannerFill},
				DrawRect{X: 0, Y: top, W: geom.Width, H: h},
				SetTextColor{Color: s.BannerTextColor},
			)
			for i, line := range lines {
				p.emit(DrawText{Text: line, X: geom.Margin, Y: top + offset + float64(i)*lh, FontSize: font.Size, Bold: true})
			}
			p.emit(SetTextColor{Color: s.TextColor})
		},
	}, nil
}

func (e *Engine) panel(b Panel, left, width float64) (placement, error) {
	s := e.style
	pad := b.Padding
	if pad <= 0 {
		pad = s.PanelPadding
	}

	type group struct {
		lines []string
		font  Font
		lh    float64
	}
	groups := make([]group, 0, len(b.Lines))
	content := 0.0
	for i, line := range b.Lines {
		font := line.Font
		if font.Size <= 0 {
			font.Size = s.BodySize
		}
		lines, err := Wrap(e.measurer, line.Text, font, width-2*s.PanelInset)
		if err != nil {
			return placement{}, err
		}
		lh := s.lineHeight(font.Size)
		groups = append(groups, group{lines: lines, font: font, lh: lh})
		content += float64(len(lines)) * lh
		if i > 0 {
			content += s.PanelLineGap
		}
	}
	boxH := content + 2*pad
	fill := b.Fill

	return placement{
		height: boxH + s.PanelSpaceAfter,
		draw: func(p *pass, top float64) {
			p.emit(SetFill{Color: fill}, DrawRect{X: left, Y: top, W: width, H: boxH})
			y := top + pad
			for _, g := range groups {
				drawLines(p, g.lines, g.font, left+s.PanelInset, y, g.lh)
				y += float64(len(g.lines))*g.lh + s.PanelLineGap
			}
		},
	}, nil
}

// columnX is the x position of cell i, from explicit offsets when given or evenly spread.
func (s Style) columnX(columns []float64, i, n int, left, width float64) float64 {
	if i < len(columns) {
		return left + columns[i]
	}
	return left + s.CellInset + float64(i)*width/float64(n)
}
