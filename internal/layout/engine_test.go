package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallPage has a usable band from y=10 to y=90 when no footer is configured.
var smallPage = PageGeometry{Width: 100, Height: 100, Margin: 10}

func paragraphs(n int) []Block {
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = Paragraph{Text: "word"}
	}
	return blocks
}

func texts(cmds []DrawCommand) []DrawText {
	var out []DrawText
	for _, c := range cmds {
		if dt, ok := c.(DrawText); ok {
			out = append(out, dt)
		}
	}
	return out
}

func countNewPages(cmds []DrawCommand) int {
	return PageCount(cmds) - 1
}

func TestLayout_EmptyInputYieldsOnePage(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout(nil, A4())
	require.NoError(t, err)
	assert.Equal(t, 1, PageCount(cmds))
	assert.Equal(t, []DrawCommand{SetTextColor{Color: Black}}, cmds)
}

func TestLayout_RejectEmpty(t *testing.T) {
	_, err := New(charMeasurer(1), WithRejectEmpty()).Layout(nil, A4())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLayout_InvalidGeometry(t *testing.T) {
	_, err := New(charMeasurer(1)).Layout(paragraphs(1), PageGeometry{Width: 10, Height: 10, Margin: 5})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestLayout_PaginatesWithoutOverflow(t *testing.T) {
	// Each paragraph is 12*0.35 + 5 = 9.2 high, so 8 fit in the 80-unit band.
	cmds, err := New(charMeasurer(1)).Layout(paragraphs(30), smallPage)
	require.NoError(t, err)

	assert.Equal(t, 3, countNewPages(cmds))
	for _, dt := range texts(cmds) {
		assert.LessOrEqual(t, dt.Y, 90.0)
		assert.GreaterOrEqual(t, dt.Y, 10.0)
	}

	perPage := []int{0}
	for _, c := range cmds {
		switch c.(type) {
		case NewPage:
			perPage = append(perPage, 0)
		case DrawText:
			perPage[len(perPage)-1]++
		}
	}
	assert.Equal(t, []int{8, 8, 8, 6}, perPage)
}

func TestLayout_SinglePageWhenContentFits(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout(paragraphs(8), smallPage)
	require.NoError(t, err)
	assert.Equal(t, 0, countNewPages(cmds))
}

func TestLayout_IsPure(t *testing.T) {
	blocks := []Block{
		Banner{Title: "REPORT"},
		Heading{Text: "Section", Level: 1},
		Paragraph{Text: "Some longer text that wraps across more than one line of output."},
		BulletList{Items: []string{"one", "two"}},
		TableHeader{Cells: []string{"A", "B"}},
	}
	blocks = append(blocks, StripedRows([][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}}, nil)...)

	engine := New(charMeasurer(1), WithFooter(Footer{Left: "left", Right: "right"}))
	first, err := engine.Layout(blocks, smallPage)
	require.NoError(t, err)
	second, err := engine.Layout(blocks, smallPage)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLayout_OversizedBlockPlacedOnFreshPage(t *testing.T) {
	blocks := []Block{
		Rect{Height: 10, Fill: PanelGray},
		Rect{Height: 500, Fill: PanelGray},
		Rect{Height: 10, Fill: PanelGray},
	}
	cmds, err := New(charMeasurer(1)).Layout(blocks, smallPage)
	require.NoError(t, err)

	assert.Equal(t, 3, PageCount(cmds))
	var rects []DrawRect
	for _, c := range cmds {
		if r, ok := c.(DrawRect); ok {
			rects = append(rects, r)
		}
	}
	require.Len(t, rects, 3)
	for _, r := range rects {
		assert.Equal(t, 10.0, r.Y, "every rect starts at the top margin")
	}
}

func TestLayout_OversizedFirstBlockDoesNotAddBlankPage(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout([]Block{Rect{Height: 500}}, smallPage)
	require.NoError(t, err)
	assert.Equal(t, 1, PageCount(cmds))
}

func TestLayout_HeadingKeptWithNextBlock(t *testing.T) {
	// Seven paragraphs end at y=74.4; a level-2 heading (9.9) would fit alone but not with the next paragraph.
	blocks := append(paragraphs(7), Heading{Text: "SUMMARY", Level: 2}, Paragraph{Text: "body"})
	cmds, err := New(charMeasurer(1)).Layout(blocks, smallPage)
	require.NoError(t, err)
	require.Equal(t, 2, PageCount(cmds))

	var sawBreak bool
	for _, c := range cmds {
		if _, ok := c.(NewPage); ok {
			sawBreak = true
		}
		if dt, ok := c.(DrawText); ok && dt.Text == "SUMMARY" {
			assert.True(t, sawBreak, "heading must move to the new page")
			assert.True(t, dt.Bold)
			assert.InDelta(t, 10+14*LineHeightFactor, dt.Y, 1e-9)
		}
	}
}

func TestLayout_TableHeaderKeptWithFirstRow(t *testing.T) {
	// Seven paragraphs end at y=74.4; the header (15) fits alone but not with its first row (12).
	blocks := append(paragraphs(7), TableHeader{Cells: []string{"Name"}})
	blocks = append(blocks, StripedRows([][]string{{"a"}, {"b"}}, nil)...)
	cmds, err := New(charMeasurer(1)).Layout(blocks, smallPage)
	require.NoError(t, err)
	require.Equal(t, 2, PageCount(cmds))

	page := 0
	pages := map[string]int{}
	ys := map[string]float64{}
	for _, c := range cmds {
		switch c := c.(type) {
		case NewPage:
			page++
		case DrawText:
			pages[c.Text] = page
			ys[c.Text] = c.Y
		}
	}
	assert.Equal(t, 1, pages["Name"], "header must move to the new page")
	assert.Equal(t, 1, pages["a"])
	assert.Equal(t, 1, pages["b"])
	assert.InDelta(t, 20.0, ys["Name"], 1e-9)
	assert.InDelta(t, 33.0, ys["a"], 1e-9)
}

func TestLayout_TableRowsStripeEvenIndexes(t *testing.T) {
	rows := StripedRows([][]string{{"a"}, {"b"}, {"c"}}, []float64{5})
	cmds, err := New(charMeasurer(1)).Layout(rows, A4())
	require.NoError(t, err)

	var fills int
	for _, c := range cmds {
		if f, ok := c.(SetFill); ok {
			assert.Equal(t, StripeGray, f.Color)
			fills++
		}
	}
	assert.Equal(t, 2, fills)

	ts := texts(cmds)
	require.Len(t, ts, 3)
	assert.Equal(t, 25.0, ts[0].X)
	assert.Equal(t, 9.0, ts[0].FontSize)
}

func TestLayout_StripeDrawnBeforeCellText(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout([]Block{TableRow{Cells: []string{"x"}, Striped: true}}, A4())
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.IsType(t, SetFill{}, cmds[1])
	assert.IsType(t, DrawRect{}, cmds[2])
	assert.IsType(t, DrawText{}, cmds[3])
}

func TestLayout_TableHeaderRepetition(t *testing.T) {
	rowData := make([][]string, 10)
	for i := range rowData {
		rowData[i] = []string{"row"}
	}
	blocks := append([]Block{TableHeader{Cells: []string{"Name"}}}, StripedRows(rowData, nil)...)

	countHeaders := func(cmds []DrawCommand) int {
		n := 0
		for _, dt := range texts(cmds) {
			if dt.Text == "Name" {
				n++
			}
		}
		return n
	}

	off, err := New(charMeasurer(1)).Layout(blocks, smallPage)
	require.NoError(t, err)
	require.Equal(t, 2, PageCount(off))
	assert.Equal(t, 1, countHeaders(off))

	on, err := New(charMeasurer(1), WithRepeatTableHeader(true)).Layout(blocks, smallPage)
	require.NoError(t, err)
	assert.Equal(t, 2, countHeaders(on))
}

func TestLayout_HeaderStyleIsFixed(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout([]Block{TableHeader{Cells: []string{"Name", "Score"}}}, A4())
	require.NoError(t, err)
	assert.Contains(t, cmds, SetFill{Color: Primary})
	assert.Contains(t, cmds, SetTextColor{Color: White})
	assert.Equal(t, SetTextColor{Color: Black}, cmds[len(cmds)-1])
}

func TestLayout_FooterOnEveryPage(t *testing.T) {
	engine := New(charMeasurer(1), WithFooter(Footer{Left: "Generated", Right: "Brand"}))
	cmds, err := engine.Layout(paragraphs(30), smallPage)
	require.NoError(t, err)

	pages := PageCount(cmds)
	var left, right int
	for _, dt := range texts(cmds) {
		switch dt.Text {
		case "Generated":
			left++
			assert.Equal(t, 80.0, dt.Y)
		case "Brand":
			right++
			assert.Equal(t, 100.0-10-5, dt.X)
		default:
			assert.LessOrEqual(t, dt.Y, 80.0, "content stays above the footer reserve")
		}
	}
	assert.Equal(t, pages, left)
	assert.Equal(t, pages, right)
}

func TestLayout_BannerBleedsFromTopOfFreshPage(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout([]Block{Banner{Title: "REPORT"}, Paragraph{Text: "after"}}, A4())
	require.NoError(t, err)

	assert.Contains(t, cmds, DrawRect{X: 0, Y: 0, W: 210, H: 40})
	ts := texts(cmds)
	require.Len(t, ts, 2)
	assert.Equal(t, DrawText{Text: "REPORT", X: 20, Y: 25, FontSize: 20, Bold: true}, ts[0])
	assert.InDelta(t, 60+12*LineHeightFactor, ts[1].Y, 1e-9)
}

func TestLayout_SpacerDroppedAtTopOfPage(t *testing.T) {
	cmds, err := New(charMeasurer(1)).Layout([]Block{Spacer{Height: 30}, Paragraph{Text: "x"}}, smallPage)
	require.NoError(t, err)
	ts := texts(cmds)
	require.Len(t, ts, 1)
	assert.InDelta(t, 10+12*LineHeightFactor, ts[0].Y, 1e-9)
}

func TestLayout_PanelDrawsBoxBeforeLines(t *testing.T) {
	panel := Panel{
		Fill: PanelGray,
		Lines: []PanelLine{
			{Text: "Overall Score: 80%", Font: Font{Size: 14, Bold: true}},
			{Text: "Category: Qualified", Font: Font{Size: 14, Bold: true}},
		},
	}
	cmds, err := New(charMeasurer(1)).Layout([]Block{panel}, A4())
	require.NoError(t, err)

	require.Len(t, cmds, 5)
	assert.Equal(t, SetFill{Color: PanelGray}, cmds[1])
	rect, ok := cmds[2].(DrawRect)
	require.True(t, ok)
	assert.InDelta(t, 2*7+2*14*LineHeightFactor+5, rect.H, 1e-9)
	assert.Equal(t, "Overall Score: 80%", cmds[3].(DrawText).Text)
	assert.Equal(t, 30.0, cmds[3].(DrawText).X)
}

func TestLayout_MeasurementErrorReturnedUnchanged(t *testing.T) {
	failure := errors.New("font metrics unavailable")
	m := MeasureFunc(func(string, Font) (float64, error) { return 0, failure })

	_, err := New(m).Layout([]Block{Paragraph{Text: "needs measuring"}}, A4())
	assert.Equal(t, failure, err)

	_, err = New(m, WithFooter(Footer{Right: "Brand"})).Layout(nil, A4())
	assert.Equal(t, failure, err)
}
