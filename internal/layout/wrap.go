package layout

import "strings"

// Font selects the size (points) and weight used for measuring and drawing text.
type Font struct {
	Size float64
	Bold bool
}

// Measurer reports the rendered width of text. Only the rendering sink knows the active font metrics.
type Measurer interface {
	MeasureWidth(text string, font Font) (float64, error)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, font Font) (float64, error)

// MeasureWidth calls f.
func (f MeasureFunc) MeasureWidth(text string, font Font) (float64, error) {
	return f(text, font)
}

// Wrap greedily packs words into lines no wider than maxWidth.
// A word wider than maxWidth on its own gets its own line; words are never split.
// Newlines in text always start a new line, and empty text yields a single empty line.
func Wrap(m Measurer, text string, font Font, maxWidth float64) ([]string, error) {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			width, err := m.MeasureWidth(candidate, font)
			if err != nil {
				return nil, err
			}
			if width <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines, nil
}
