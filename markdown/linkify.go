package markdown

import (
	"context"
	"strings"

	"github.com/bgraf/figures/token"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

func newLinkifyParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 100),
		),
		parser.WithInlineParsers(
			util.Prioritized(extension.NewLinkifyParser(), 999),
		),
	)
}

// linkify replaces bare URLs in the text children of inline containers by
// links. Text already inside a link is left alone.
func linkify(ctx context.Context, md *Markdown, state *State) error {
	if !md.linkify {
		return nil
	}

	for _, t := range state.Tokens {
		if t.Kind != token.KindInline {
			continue
		}

		t.Children = md.linkifyChildren(t.Children)
	}

	return nil
}

func (m *Markdown) linkifyChildren(children []*token.Token) []*token.Token {
	out := make([]*token.Token, 0, len(children))
	depth := 0

	for _, child := range children {
		switch child.Kind {
		case token.KindLinkOpen:
			depth++
		case token.KindLinkClose:
			depth--
		}

		if child.Kind != token.KindText || depth > 0 || !mayContainLink(child.Content) {
			out = append(out, child)
			continue
		}

		out = append(out, m.linkifyText(child.Content)...)
	}

	return out
}

func mayContainLink(s string) bool {
	return strings.ContainsAny(s, ".:@")
}

func (m *Markdown) linkifyText(content string) []*token.Token {
	// The paragraph parser trims surrounding blanks, they are restored below.
	trimmed := strings.TrimLeft(content, " \t")
	leading := content[:len(content)-len(trimmed)]
	body := strings.TrimRight(trimmed, " \t")
	trailing := trimmed[len(body):]

	source := []byte(body)
	root := m.linkifyParser.Parse(text.NewReader(source))

	out := appendText(nil, leading)

	for p := root.FirstChild(); p != nil; p = p.NextSibling() {
		for n := p.FirstChild(); n != nil; n = n.NextSibling() {
			switch n := n.(type) {
			case *ast.AutoLink:
				out = append(out, autoLink(source, n)...)
			case *ast.Text:
				out = appendText(out, string(n.Segment.Value(source)))
			}
		}
	}

	return appendText(out, trailing)
}
