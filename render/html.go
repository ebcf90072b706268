package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/bgraf/figures/token"
	"github.com/yuin/goldmark/util"
)

// RenderFunc writes the token at tokens[idx].
type RenderFunc func(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int)

type HTMLRendererOption func(*HTMLRenderer)

// WithXHTML closes void elements with " />".
func WithXHTML(xhtml bool) HTMLRendererOption {
	return func(r *HTMLRenderer) {
		r.XHTML = xhtml
	}
}

// HTMLRenderer serializes a token stream to HTML. Tokens without a
// registered rule are written as plain tags using their Tag and Attrs.
type HTMLRenderer struct {
	XHTML bool
	rules map[token.Kind]RenderFunc
}

func NewHTMLRenderer(opts ...HTMLRendererOption) *HTMLRenderer {
	r := &HTMLRenderer{
		rules: make(map[token.Kind]RenderFunc),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.Register(token.KindText, renderText)
	r.Register(token.KindCodeInline, renderCodeInline)
	r.Register(token.KindCodeBlock, renderCodeBlock)
	r.Register(token.KindFence, renderFence)
	r.Register(token.KindImage, renderImage)
	r.Register(token.KindHardbreak, renderHardbreak)
	r.Register(token.KindSoftbreak, renderSoftbreak)
	r.Register(token.KindHTMLBlock, renderHTML)
	r.Register(token.KindHTMLInline, renderHTML)

	return r
}

// Register replaces the rule for kind.
func (r *HTMLRenderer) Register(kind token.Kind, fn RenderFunc) {
	r.rules[kind] = fn
}

// Render writes the whole block token stream to w.
func (r *HTMLRenderer) Render(w io.Writer, tokens []*token.Token) error {
	bw := bufio.NewWriter(w)
	r.RenderTokens(bw, tokens)

	return bw.Flush()
}

func (r *HTMLRenderer) RenderTokens(w util.BufWriter, tokens []*token.Token) {
	for i, t := range tokens {
		if t.Kind == token.KindInline {
			r.RenderInline(w, t.Children)
			continue
		}

		r.renderOne(w, tokens, i)
	}
}

func (r *HTMLRenderer) RenderInline(w util.BufWriter, tokens []*token.Token) {
	for i := range tokens {
		r.renderOne(w, tokens, i)
	}
}

func (r *HTMLRenderer) renderOne(w util.BufWriter, tokens []*token.Token, idx int) {
	if fn, ok := r.rules[tokens[idx].Kind]; ok {
		fn(r, w, tokens, idx)
		return
	}

	r.RenderToken(w, tokens, idx)
}

// RenderToken writes a generic open, close or void tag. Block tokens are
// followed by a newline unless the next token continues them inline.
func (r *HTMLRenderer) RenderToken(w util.BufWriter, tokens []*token.Token, idx int) {
	t := tokens[idx]
	if t.Hidden {
		return
	}

	if t.Block && t.Nesting != -1 && idx > 0 && tokens[idx-1].Hidden {
		_ = w.WriteByte('\n')
	}

	if t.Nesting == -1 {
		_, _ = w.WriteString("</")
	} else {
		_ = w.WriteByte('<')
	}

	_, _ = w.WriteString(t.Tag)
	r.RenderAttrs(w, t.Attrs)

	if t.Nesting == 0 && r.XHTML {
		_, _ = w.WriteString(" /")
	}

	needLf := false
	if t.Block {
		needLf = true

		if t.Nesting == 1 && idx+1 < len(tokens) {
			next := tokens[idx+1]
			if next.Kind == token.KindInline || next.Hidden {
				needLf = false
			} else if next.Nesting == -1 && next.Tag == t.Tag {
				needLf = false
			}
		}
	}

	if needLf {
		_, _ = w.WriteString(">\n")
	} else {
		_ = w.WriteByte('>')
	}
}

func (r *HTMLRenderer) RenderAttrs(w util.BufWriter, attrs []token.Attr) {
	for _, a := range attrs {
		_ = w.WriteByte(' ')
		_, _ = w.WriteString(a.Name)
		_, _ = w.WriteString("=\"")
		_, _ = w.Write(util.EscapeHTML([]byte(a.Value)))
		_ = w.WriteByte('"')
	}
}

// RenderInlineAsText returns the plain text of inline tokens, as used for
// the alt attribute of images.
func RenderInlineAsText(tokens []*token.Token) string {
	var sb strings.Builder

	for _, t := range tokens {
		switch t.Kind {
		case token.KindText, token.KindCodeInline, token.KindHTMLInline:
			sb.WriteString(t.Content)
		case token.KindImage:
			sb.WriteString(RenderInlineAsText(t.Children))
		case token.KindSoftbreak, token.KindHardbreak:
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func writeEscaped(w util.BufWriter, s string) {
	_, _ = w.Write(util.EscapeHTML([]byte(s)))
}

func renderText(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	writeEscaped(w, tokens[idx].Content)
}

func renderCodeInline(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	t := tokens[idx]
	_, _ = w.WriteString("<code")
	r.RenderAttrs(w, t.Attrs)
	_ = w.WriteByte('>')
	writeEscaped(w, t.Content)
	_, _ = w.WriteString("</code>")
}

func renderCodeBlock(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	t := tokens[idx]
	_, _ = w.WriteString("<pre")
	r.RenderAttrs(w, t.Attrs)
	_, _ = w.WriteString("><code>")
	writeEscaped(w, t.Content)
	_, _ = w.WriteString("</code></pre>\n")
}

func renderFence(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	t := tokens[idx]

	attrs := t.Attrs
	if fields := strings.Fields(string(util.UnescapePunctuations([]byte(t.Info)))); len(fields) > 0 {
		attrs = append(append([]token.Attr{}, attrs...), token.Attr{Name: "class", Value: "language-" + fields[0]})
	}

	_, _ = w.WriteString("<pre><code")
	r.RenderAttrs(w, attrs)
	_ = w.WriteByte('>')
	writeEscaped(w, t.Content)
	_, _ = w.WriteString("</code></pre>\n")
}

func renderImage(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	t := tokens[idx]

	attrs := make([]token.Attr, len(t.Attrs))
	copy(attrs, t.Attrs)

	alt := RenderInlineAsText(t.Children)
	for i := range attrs {
		if attrs[i].Name == "alt" {
			attrs[i].Value = alt
			break
		}
	}

	_, _ = w.WriteString("<")
	_, _ = w.WriteString(t.Tag)
	r.RenderAttrs(w, attrs)
	if r.XHTML {
		_, _ = w.WriteString(" /")
	}
	_ = w.WriteByte('>')
}

func renderHardbreak(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	if r.XHTML {
		_, _ = w.WriteString("<br />\n")
		return
	}

	_, _ = w.WriteString("<br>\n")
}

func renderSoftbreak(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	_ = w.WriteByte('\n')
}

func renderHTML(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
	_, _ = w.WriteString(tokens[idx].Content)
}
