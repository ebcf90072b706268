package document

import (
	"fmt"

	"github.com/bgraf/figures/figures"
	"github.com/bgraf/figures/markdown"
)

type StoreOptions struct {
	Figures figures.Options
	Linkify bool
	HTML    bool
	XHTML   bool

	// Extensions lists the lower case file extensions loaded as documents.
	Extensions []string
}

func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Extensions: []string{".md", ".markdown"},
	}
}

// NewMarkdown returns a markdown instance with implicit figures and the
// configured rendering options.
func (o StoreOptions) NewMarkdown() (*markdown.Markdown, error) {
	opts := []markdown.Option{
		markdown.WithExtensions(figures.New(o.Figures)),
	}

	if o.Linkify {
		opts = append(opts, markdown.WithLinkify())
	}

	if o.HTML {
		opts = append(opts, markdown.WithHTML())
	}

	if o.XHTML {
		opts = append(opts, markdown.WithXHTML())
	}

	md, err := markdown.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("new markdown: %w", err)
	}

	return md, nil
}

func (o StoreOptions) hasExtension(ext string) bool {
	for _, e := range o.Extensions {
		if e == ext {
			return true
		}
	}

	return false
}
