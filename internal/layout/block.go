package layout

// Block is one logical unit of report content. The set of implementations is closed.
type Block interface {
	block()
}

// Heading is a bold section title. Level 1 is the largest.
type Heading struct {
	Text  string
	Level int
}

// Paragraph is wrapped body text.
type Paragraph struct {
	Text string
}

// LabeledValue renders as "Label: Value" body text.
type LabeledValue struct {
	Label string
	Value string
}

// BulletList renders one indented "•" line group per item.
type BulletList struct {
	Items []string
}

// Rect is a filled rectangle spanning the content width.
type Rect struct {
	Height float64
	Fill   Color
}

// TableRow is one row of cell text. Columns are x offsets from the left margin;
// nil spreads the cells evenly.
type TableRow struct {
	Cells   []string
	Striped bool
	Columns []float64
}

// TableHeader is a table's header row, drawn with the fixed header style.
type TableHeader struct {
	Cells   []string
	Columns []float64
}

// Banner is a full-bleed title band. On a fresh page it starts at the top edge.
type Banner struct {
	Title  string
	Height float64
}

// Panel is a filled box with text lines drawn over it.
type Panel struct {
	Fill    Color
	Lines   []PanelLine
	Padding float64
}

// PanelLine is one text entry inside a Panel.
type PanelLine struct {
	Text string
	Font Font
}

// Spacer adds vertical space. It never forces a page break and is dropped at the top of a page.
type Spacer struct {
	Height float64
}

func (Heading) block()      {}
func (Paragraph) block()    {}
func (LabeledValue) block() {}
func (BulletList) block()   {}
func (Rect) block()         {}
func (TableRow) block()     {}
func (TableHeader) block()  {}
func (Banner) block()       {}
func (Panel) block()        {}
func (Spacer) block()       {}

// StripedRows builds table rows with the stripe fill on even row indexes.
func StripedRows(rows [][]string, columns []float64) []Block {
	blocks := make([]Block, 0, len(rows))
	for i, cells := range rows {
		blocks = append(blocks, TableRow{
			Cells:   cells,
			Striped: i%2 == 0,
			Columns: columns,
		})
	}
	return blocks
}
