package snapshot

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ElementSelector returns a CSS selector matching the element with the given id.
// An attribute selector is used so ids that are not valid CSS identifiers still match.
func ElementSelector(id string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(id)
	return `[id="` + escaped + `"]`
}

// CheckElement reports a MissingElementError when html has no element with the given id.
func CheckElement(html, id string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}
	if doc.Find(ElementSelector(id)).Length() == 0 {
		return &MissingElementError{ElementID: id}
	}
	return nil
}
