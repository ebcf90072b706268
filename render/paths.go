package render

import (
	"net/url"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
)

// RecoderFunc maps a relative document path to the URL it is served under.
type RecoderFunc func(original string) (string, bool)

// RecodePaths rewrites the relative targets of images, links and media
// sources. Absolute and unparsable URLs are kept.
func RecodePaths(doc *goquery.Document, toResource RecoderFunc) {
	doc.Find("img,a,source").Each(func(i int, s *goquery.Selection) {
		attribute := "src"
		if s.Is("a") {
			attribute = "href"
		}

		src, ok := s.Attr(attribute)
		if !ok || src == "" {
			return
		}

		uri, err := url.Parse(src)
		if err != nil {
			return
		}

		if uri.IsAbs() || uri.Host != "" || filepath.IsAbs(uri.Path) || uri.Path == "" {
			return
		}

		if target, ok := toResource(src); ok {
			s.SetAttr(attribute, target)
		}
	})
}
