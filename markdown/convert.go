package markdown

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bgraf/figures/token"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// converter flattens a goldmark block tree into the block token stream.
type converter struct {
	source []byte
	tokens []*token.Token
}

func (c *converter) push(kind token.Kind, tag string, nesting int) *token.Token {
	t := token.New(kind, tag, nesting)
	t.Block = true
	c.tokens = append(c.tokens, t)

	return t
}

func (c *converter) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		c.block(n)
	}
}

func (c *converter) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph:
		c.paragraph(n, false)

	case *ast.TextBlock:
		// Text of tight list items.
		c.paragraph(n, true)

	case *ast.Heading:
		tag := fmt.Sprintf("h%d", n.Level)
		open := c.push(token.KindHeadingOpen, tag, 1)
		open.Attrs = attributes(n)
		c.inline(n)
		c.push(token.KindHeadingClose, tag, -1)

	case *ast.ThematicBreak:
		c.push(token.KindHr, "hr", 0)

	case *ast.CodeBlock:
		t := c.push(token.KindCodeBlock, "code", 0)
		t.Content = c.lines(n)

	case *ast.FencedCodeBlock:
		t := c.push(token.KindFence, "code", 0)
		t.Content = c.lines(n)
		if n.Info != nil {
			t.Info = string(n.Info.Segment.Value(c.source))
		}

	case *ast.Blockquote:
		c.push(token.KindBlockquoteOpen, "blockquote", 1)
		c.blocks(n)
		c.push(token.KindBlockquoteClose, "blockquote", -1)

	case *ast.List:
		if n.IsOrdered() {
			open := c.push(token.KindOrderedListOpen, "ol", 1)
			if n.Start != 1 {
				open.AttrPush("start", strconv.Itoa(n.Start))
			}
			c.blocks(n)
			c.push(token.KindOrderedListClose, "ol", -1)
		} else {
			c.push(token.KindBulletListOpen, "ul", 1)
			c.blocks(n)
			c.push(token.KindBulletListClose, "ul", -1)
		}

	case *ast.ListItem:
		c.push(token.KindListItemOpen, "li", 1)
		c.blocks(n)
		c.push(token.KindListItemClose, "li", -1)

	case *ast.HTMLBlock:
		t := c.push(token.KindHTMLBlock, "", 0)
		t.Content = c.lines(n)
		if n.HasClosure() {
			t.Content += string(n.ClosureLine.Value(c.source))
		}

	default:
		c.blocks(n)
	}
}

func (c *converter) paragraph(n ast.Node, hidden bool) {
	open := c.push(token.KindParagraphOpen, "p", 1)
	open.Hidden = hidden
	c.inline(n)
	closing := c.push(token.KindParagraphClose, "p", -1)
	closing.Hidden = hidden
}

func (c *converter) inline(n ast.Node) {
	t := token.New(token.KindInline, "", 0)
	t.Content = strings.TrimSpace(c.lines(n))
	t.Children = inlines(c.source, n)
	c.tokens = append(c.tokens, t)
}

func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(c.source))
	}

	return buf.String()
}

func inlines(source []byte, parent ast.Node) []*token.Token {
	out := []*token.Token{}
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = appendInline(out, source, n)
	}

	return out
}

func appendInline(out []*token.Token, source []byte, node ast.Node) []*token.Token {
	switch n := node.(type) {
	case *ast.Text:
		value := n.Segment.Value(source)
		if !n.IsRaw() {
			value = unescape(value)
		}

		if n.SoftLineBreak() || n.HardLineBreak() {
			value = bytes.TrimRight(value, " \t")
		}

		out = appendText(out, string(value))

		if n.HardLineBreak() {
			out = append(out, token.New(token.KindHardbreak, "br", 0))
		} else if n.SoftLineBreak() {
			out = append(out, token.New(token.KindSoftbreak, "br", 0))
		}

	case *ast.String:
		value := n.Value
		if !n.IsRaw() {
			value = unescape(value)
		}

		out = appendText(out, string(value))

	case *ast.CodeSpan:
		t := token.New(token.KindCodeInline, "code", 0)
		t.Content = codeSpanContent(source, n)
		out = append(out, t)

	case *ast.Emphasis:
		openKind, closeKind, tag := token.KindEmOpen, token.KindEmClose, "em"
		if n.Level == 2 {
			openKind, closeKind, tag = token.KindStrongOpen, token.KindStrongClose, "strong"
		}

		out = append(out, token.New(openKind, tag, 1))
		out = append(out, inlines(source, n)...)
		out = append(out, token.New(closeKind, tag, -1))

	case *ast.Link:
		open := token.New(token.KindLinkOpen, "a", 1)
		open.AttrPush("href", destination(n.Destination))
		if len(n.Title) > 0 {
			open.AttrPush("title", string(unescape(n.Title)))
		}

		out = append(out, open)
		out = append(out, inlines(source, n)...)
		out = append(out, token.New(token.KindLinkClose, "a", -1))

	case *ast.Image:
		img := token.New(token.KindImage, "img", 0)
		img.AttrPush("src", destination(n.Destination))
		// Filled from the children when rendering.
		img.AttrPush("alt", "")
		if len(n.Title) > 0 {
			img.AttrPush("title", string(unescape(n.Title)))
		}
		img.Attrs = append(img.Attrs, attributes(n)...)
		img.Children = inlines(source, n)

		out = append(out, img)

	case *ast.AutoLink:
		out = append(out, autoLink(source, n)...)

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			segment := n.Segments.At(i)
			buf.Write(segment.Value(source))
		}

		t := token.New(token.KindHTMLInline, "", 0)
		t.Content = buf.String()
		out = append(out, t)

	default:
		out = append(out, inlines(source, n)...)
	}

	return out
}

func autoLink(source []byte, n *ast.AutoLink) []*token.Token {
	url := string(n.URL(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}

	open := token.New(token.KindLinkOpen, "a", 1)
	open.AttrPush("href", url)

	return []*token.Token{
		open,
		token.NewText(string(n.Label(source))),
		token.New(token.KindLinkClose, "a", -1),
	}
}

// appendText merges adjacent text runs.
func appendText(out []*token.Token, content string) []*token.Token {
	if content == "" {
		return out
	}

	if l := len(out); l > 0 && out[l-1].Kind == token.KindText {
		out[l-1].Content += content
		return out
	}

	return append(out, token.NewText(content))
}

func codeSpanContent(source []byte, n *ast.CodeSpan) string {
	var buf bytes.Buffer

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			value := t.Segment.Value(source)
			if l := len(value); l > 0 && value[l-1] == '\n' {
				buf.Write(value[:l-1])
				buf.WriteByte(' ')
			} else {
				buf.Write(value)
			}
		case *ast.String:
			buf.Write(t.Value)
		}
	}

	return buf.String()
}

func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

func destination(dest []byte) string {
	return string(util.URLEscape(dest, true))
}

func attributes(n ast.Node) []token.Attr {
	var attrs []token.Attr

	for _, a := range n.Attributes() {
		var value string
		switch v := a.Value.(type) {
		case []byte:
			value = string(v)
		case string:
			value = v
		default:
			value = fmt.Sprint(v)
		}

		attrs = append(attrs, token.Attr{Name: string(a.Name), Value: value})
	}

	return attrs
}

func newBlockParser(html bool) parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(withoutParser(parser.DefaultBlockParsers(), parser.NewHTMLBlockParser(), html)...),
		parser.WithInlineParsers(withoutParser(parser.DefaultInlineParsers(), parser.NewRawHTMLParser(), html)...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// newInlineParser only knows paragraphs, so every line of the source ends up
// as inline content.
func newInlineParser(html bool) parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 100),
		),
		parser.WithInlineParsers(withoutParser(parser.DefaultInlineParsers(), parser.NewRawHTMLParser(), html)...),
	)
}

// withoutParser drops the parsers of the same type as excluded unless keep
// is set.
func withoutParser(parsers []util.PrioritizedValue, excluded interface{}, keep bool) []util.PrioritizedValue {
	if keep {
		return parsers
	}

	var result []util.PrioritizedValue
	for _, p := range parsers {
		if reflect.TypeOf(p.Value) != reflect.TypeOf(excluded) {
			result = append(result, p)
		}
	}

	return result
}

// parseInlineContainer parses source as inline content. Blanks around the
// source are kept as text, the paragraph parser would drop them.
func (m *Markdown) parseInlineContainer(source []byte) *token.Token {
	t := token.New(token.KindInline, "", 0)
	t.Content = string(source)
	t.Children = []*token.Token{}

	trimmed := bytes.TrimLeft(source, " \t")
	leading := string(source[:len(source)-len(trimmed)])
	body := bytes.TrimRight(trimmed, " \t")
	trailing := string(trimmed[len(body):])

	t.Children = appendText(t.Children, leading)

	root := m.inlineParser.Parse(text.NewReader(body))
	first := true

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if !first {
			t.Children = append(t.Children, token.New(token.KindSoftbreak, "br", 0))
		}
		first = false

		for _, child := range inlines(body, n) {
			if child.Kind == token.KindText {
				t.Children = appendText(t.Children, child.Content)
				continue
			}

			t.Children = append(t.Children, child)
		}
	}

	t.Children = appendText(t.Children, trailing)

	return t
}
