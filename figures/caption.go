package figures

import (
	"context"
	"fmt"

	"github.com/bgraf/figures/token"
)

// caption appends figcaption_open, the caption body and figcaption_close to
// the children of inline. Nothing is appended when there is no caption.
func (c *converter) caption(ctx context.Context, inline, image *token.Token) error {
	var (
		body []*token.Token
		err  error
	)

	switch c.options.Figcaption {
	case CaptionTitle:
		body, err = c.titleCaption(ctx, image)
	case CaptionAlt:
		body = c.altCaption(image)
	}

	if err != nil || body == nil {
		return err
	}

	inline.Children = append(inline.Children, token.New(token.KindFigcaptionOpen, "figcaption", 1))
	inline.Children = append(inline.Children, body...)
	inline.Children = append(inline.Children, token.New(token.KindFigcaptionClose, "figcaption", -1))

	return nil
}

// titleCaption parses the title attribute as inline markup and removes it
// from the image. Images without title yield no caption.
func (c *converter) titleCaption(ctx context.Context, image *token.Token) ([]*token.Token, error) {
	title, _ := image.AttrGet("title")
	if title == "" {
		return nil, nil
	}

	if c.parser == nil {
		return nil, ErrNoInlineParser
	}

	parsed, err := c.parser.ParseInline(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("parse caption '%s': %w", title, err)
	}

	body := []*token.Token{}
	if len(parsed) > 0 && parsed[0].Children != nil {
		body = parsed[0].Children
	}

	image.AttrRemove("title")

	return body, nil
}

// altCaption moves the alt text of image into the caption. With KeepAlt the
// caption gets a copy and the image keeps its alt text.
func (c *converter) altCaption(image *token.Token) []*token.Token {
	if len(image.Children) == 0 {
		return nil
	}

	if c.options.KeepAlt {
		return token.CloneAll(image.Children)
	}

	body := image.Children
	image.Children = nil

	return body
}
