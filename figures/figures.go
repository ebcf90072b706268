// Package figures turns paragraphs that hold nothing but an image, or an
// image wrapped in a link, into figures. Depending on Options the figure
// gets a caption from the image title or alt text, a link to the image
// source, a running tabindex and copies of the image attributes.
package figures

import (
	"context"
	"errors"
	"fmt"

	"github.com/bgraf/figures/markdown"
	"github.com/bgraf/figures/token"
)

// RuleName is the name the conversion is registered under in the core chain.
const RuleName = "implicit_figures"

// MetaKey is the front matter key holding per-document option overrides.
const MetaKey = "figures"

var ErrNoInlineParser = errors.New("no inline parser for title captions")

// InlineParser parses caption text as inline markup. The first returned
// token is expected to be an inline container.
type InlineParser interface {
	ParseInline(ctx context.Context, source string) ([]*token.Token, error)
}

type extension struct {
	options Options
}

// New returns an extension that registers the conversion right before the
// linkify rule, so captions are linkified as well.
func New(options Options) markdown.Extender {
	return &extension{
		options: options,
	}
}

func (e *extension) Extend(md *markdown.Markdown) error {
	return md.Core().Before(markdown.RuleLinkify, RuleName, Rule(e.options))
}

// Rule returns the core rule. Settings below MetaKey in the document front
// matter override options for that document.
func Rule(options Options) markdown.RuleFunc {
	return func(ctx context.Context, md *markdown.Markdown, state *markdown.State) error {
		opts := options

		if cfg, ok := ConfigFrom(state.Meta[MetaKey]); ok {
			var err error
			opts, err = options.With(cfg)
			if err != nil {
				return fmt.Errorf("front matter: %w", err)
			}
		}

		var parser InlineParser
		if md != nil {
			parser = md
		}

		return Apply(ctx, state.Tokens, opts, parser)
	}
}

// Apply converts every eligible paragraph of tokens in stream order. The
// first and the last token are never inspected. Title captions are parsed
// one at a time with parser; a parse error aborts the conversion.
func Apply(ctx context.Context, tokens []*token.Token, options Options, parser InlineParser) error {
	c := &converter{
		options:  options,
		parser:   parser,
		tabIndex: 1,
	}

	for i := 1; i < len(tokens)-1; i++ {
		if !isEligible(tokens, i) {
			continue
		}

		if err := c.convert(ctx, tokens, i); err != nil {
			return err
		}
	}

	return nil
}

// isEligible reports whether tokens[i] is an inline container holding a
// lone image, or link_open, image, link_close, enclosed by a paragraph.
func isEligible(tokens []*token.Token, i int) bool {
	t := tokens[i]
	if t.Kind != token.KindInline {
		return false
	}

	switch children := t.Children; len(children) {
	case 1:
		if children[0].Kind != token.KindImage {
			return false
		}
	case 3:
		if children[0].Kind != token.KindLinkOpen ||
			children[1].Kind != token.KindImage ||
			children[2].Kind != token.KindLinkClose {
			return false
		}
	default:
		return false
	}

	return tokens[i-1].Kind == token.KindParagraphOpen &&
		tokens[i+1].Kind == token.KindParagraphClose
}

// converter carries the state of one Apply call.
type converter struct {
	options  Options
	parser   InlineParser
	tabIndex int
}

func (c *converter) convert(ctx context.Context, tokens []*token.Token, i int) error {
	inline := tokens[i]
	figure := tokens[i-1]

	figure.Retag(token.KindFigureOpen, "figure")
	tokens[i+1].Retag(token.KindFigureClose, "figure")

	if c.options.DataType {
		figure.AttrPush("data-type", "image")
	}

	if c.options.Link && len(inline.Children) == 1 {
		wrapInLink(inline)
	}

	image := currentImage(inline)

	if err := c.caption(ctx, inline, image); err != nil {
		return err
	}

	c.augment(figure, image)

	return nil
}

func currentImage(inline *token.Token) *token.Token {
	if len(inline.Children) == 3 {
		return inline.Children[1]
	}

	return inline.Children[0]
}

func wrapInLink(inline *token.Token) {
	image := inline.Children[0]
	src, _ := image.AttrGet("src")

	open := token.New(token.KindLinkOpen, "a", 1)
	open.AttrPush("href", src)

	inline.Children = []*token.Token{
		open,
		image,
		token.New(token.KindLinkClose, "a", -1),
	}
}
