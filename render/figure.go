package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Figure describes one figure element of a rendered document.
type Figure struct {
	Index    int    `json:"index"`
	Source   string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	TabIndex string `json:"tabindex,omitempty"`
	DataType string `json:"dataType,omitempty"`
	Lazy     bool   `json:"lazy"`
}

// Figures collects the figures of doc in document order. Figures without an
// image are skipped.
func Figures(doc *goquery.Document) []Figure {
	var figures []Figure

	doc.Find("figure").Each(func(i int, s *goquery.Selection) {
		img := s.Find("img").First()
		if img.Length() == 0 {
			return
		}

		fig := Figure{
			Index:    len(figures),
			Source:   img.AttrOr("src", ""),
			Alt:      img.AttrOr("alt", ""),
			TabIndex: s.AttrOr("tabindex", ""),
			DataType: s.AttrOr("data-type", ""),
			Lazy:     img.AttrOr("loading", "") == "lazy",
		}

		if a := firstElementChild(s); a != nil && a.Data == "a" {
			for _, attr := range a.Attr {
				if attr.Key == "href" {
					fig.Link = attr.Val
				}
			}
		}

		fig.Caption = strings.TrimSpace(s.ChildrenFiltered("figcaption").First().Text())

		figures = append(figures, fig)
	})

	return figures
}

func firstElementChild(s *goquery.Selection) *html.Node {
	if len(s.Nodes) == 0 {
		return nil
	}

	for n := s.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}

	return nil
}
