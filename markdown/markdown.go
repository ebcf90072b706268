// Package markdown turns markdown source into a flat token stream using
// goldmark, runs a chain of named core rules over it and renders the result
// to HTML.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/bgraf/figures/render"
	"github.com/bgraf/figures/token"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	RuleBlock   = "block"
	RuleLinkify = "linkify"
)

// State is the data shared by the core rules of a single parse.
type State struct {
	Source []byte
	Tokens []*token.Token

	// Meta holds the YAML front matter of the document, if any.
	Meta map[string]interface{}

	// InlineMode is set when the source is parsed as a single inline span.
	InlineMode bool
}

// An Extender adds rules to a Markdown instance.
type Extender interface {
	Extend(md *Markdown) error
}

type Option func(*Markdown)

// WithLinkify turns bare URLs in text into links.
func WithLinkify() Option {
	return func(m *Markdown) {
		m.linkify = true
	}
}

// WithHTML passes raw HTML blocks and inline tags through. Without it they
// are parsed as text and escaped.
func WithHTML() Option {
	return func(m *Markdown) {
		m.html = true
	}
}

// WithXHTML renders void elements as "<img ... />".
func WithXHTML() Option {
	return func(m *Markdown) {
		m.xhtml = true
	}
}

func WithExtensions(exts ...Extender) Option {
	return func(m *Markdown) {
		m.extensions = append(m.extensions, exts...)
	}
}

type Markdown struct {
	core       *Ruler
	renderer   *render.HTMLRenderer
	extensions []Extender
	linkify    bool
	html       bool
	xhtml      bool

	blockParser   parser.Parser
	inlineParser  parser.Parser
	linkifyParser parser.Parser
}

func New(opts ...Option) (*Markdown, error) {
	md := &Markdown{
		core: &Ruler{},
	}

	for _, opt := range opts {
		opt(md)
	}

	md.blockParser = goldmark.New(
		goldmark.WithParser(newBlockParser(md.html)),
		goldmark.WithExtensions(meta.Meta),
	).Parser()
	md.inlineParser = newInlineParser(md.html)
	md.linkifyParser = newLinkifyParser()
	md.renderer = render.NewHTMLRenderer(render.WithXHTML(md.xhtml))

	md.core.Push(RuleBlock, parseBlocks)
	md.core.Push(RuleLinkify, linkify)

	for _, ext := range md.extensions {
		if err := ext.Extend(md); err != nil {
			return nil, fmt.Errorf("extension failed: %w", err)
		}
	}

	return md, nil
}

// Core returns the ruler extensions register their rules with.
func (m *Markdown) Core() *Ruler {
	return m.core
}

func (m *Markdown) Renderer() *render.HTMLRenderer {
	return m.renderer
}

// Parse runs all core rules over source.
func (m *Markdown) Parse(ctx context.Context, source []byte) (*State, error) {
	state := &State{
		Source: source,
	}

	if err := m.core.run(ctx, m, state); err != nil {
		return nil, err
	}

	return state, nil
}

// ParseInline parses source as one inline span. The result holds exactly one
// inline container token.
func (m *Markdown) ParseInline(ctx context.Context, source string) ([]*token.Token, error) {
	state := &State{
		Source:     []byte(source),
		InlineMode: true,
	}

	if err := m.core.run(ctx, m, state); err != nil {
		return nil, err
	}

	return state.Tokens, nil
}

// Convert parses source and writes the rendered HTML to w.
func (m *Markdown) Convert(ctx context.Context, source []byte, w io.Writer) error {
	state, err := m.Parse(ctx, source)
	if err != nil {
		return err
	}

	return m.renderer.Render(w, state.Tokens)
}

func (m *Markdown) Render(ctx context.Context, source []byte) (string, error) {
	var buffer bytes.Buffer

	if err := m.Convert(ctx, source, &buffer); err != nil {
		return "", err
	}

	return buffer.String(), nil
}

func parseBlocks(ctx context.Context, md *Markdown, state *State) error {
	if state.InlineMode {
		state.Tokens = []*token.Token{md.parseInlineContainer(state.Source)}
		return nil
	}

	pc := parser.NewContext()
	root := md.blockParser.Parse(text.NewReader(state.Source), parser.WithContext(pc))

	state.Meta = meta.Get(pc)

	c := &converter{source: state.Source}
	c.blocks(root)
	state.Tokens = c.tokens

	return nil
}
