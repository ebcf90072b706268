package document

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bgraf/figures/render"
	"github.com/google/uuid"
)

type Document struct {
	Path           string            // File system path, empty for ad hoc renders
	HTML           *goquery.Document // HTML content
	GUID           uuid.UUID
	Title          string
	Date           time.Time
	Figures        []render.Figure
	HasFrontMatter bool
}

func (doc *Document) HasFigures() bool {
	return len(doc.Figures) > 0
}

// Fragment returns the rendered body without the enclosing html and body
// elements.
func (doc *Document) Fragment() (string, error) {
	return doc.HTML.Find("body").Html()
}
