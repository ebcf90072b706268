package render

import (
	"bytes"
	"testing"

	"github.com/bgraf/figures/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/util"
)

func block(kind token.Kind, tag string, nesting int) *token.Token {
	t := token.New(kind, tag, nesting)
	t.Block = true
	return t
}

func inline(children ...*token.Token) *token.Token {
	t := token.New(token.KindInline, "", 0)
	t.Children = children
	return t
}

func image(src string, alt ...*token.Token) *token.Token {
	t := token.New(token.KindImage, "img", 0)
	t.AttrPush("src", src)
	t.AttrPush("alt", "")
	t.Children = alt
	return t
}

func render(t *testing.T, r *HTMLRenderer, tokens []*token.Token) string {
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tokens))
	return buf.String()
}

func TestRenderFigure(t *testing.T) {
	open := block(token.KindFigureOpen, "figure", 1)
	open.AttrPush("data-type", "image")

	tokens := []*token.Token{
		open,
		inline(
			image("fig.png", token.NewText("a < b")),
			token.New(token.KindFigcaptionOpen, "figcaption", 1),
			token.NewText("caption"),
			token.New(token.KindFigcaptionClose, "figcaption", -1),
		),
		block(token.KindFigureClose, "figure", -1),
	}

	assert.Equal(t,
		"<figure data-type=\"image\"><img src=\"fig.png\" alt=\"a &lt; b\"><figcaption>caption</figcaption></figure>\n",
		render(t, NewHTMLRenderer(), tokens),
	)
}

func TestRenderHiddenParagraph(t *testing.T) {
	p := block(token.KindParagraphOpen, "p", 1)
	p.Hidden = true
	pc := block(token.KindParagraphClose, "p", -1)
	pc.Hidden = true

	tokens := []*token.Token{
		block(token.KindBulletListOpen, "ul", 1),
		block(token.KindListItemOpen, "li", 1),
		p,
		inline(token.NewText("item")),
		pc,
		block(token.KindListItemClose, "li", -1),
		block(token.KindBulletListClose, "ul", -1),
	}

	assert.Equal(t, "<ul>\n<li>item</li>\n</ul>\n", render(t, NewHTMLRenderer(), tokens))
}

func TestRenderXHTML(t *testing.T) {
	tokens := []*token.Token{
		block(token.KindParagraphOpen, "p", 1),
		inline(image("a.png"), token.New(token.KindHardbreak, "br", 0), token.NewText("x")),
		block(token.KindParagraphClose, "p", -1),
	}

	assert.Equal(t,
		"<p><img src=\"a.png\" alt=\"\" /><br />\nx</p>\n",
		render(t, NewHTMLRenderer(WithXHTML(true)), tokens),
	)
}

func TestRenderAttrsEscaped(t *testing.T) {
	a := token.New(token.KindLinkOpen, "a", 1)
	a.AttrPush("href", "x.html?a=1&b=\"2\"")

	tokens := []*token.Token{
		inline(a, token.NewText("link"), token.New(token.KindLinkClose, "a", -1)),
	}

	assert.Equal(t, "<a href=\"x.html?a=1&amp;b=&quot;2&quot;\">link</a>", render(t, NewHTMLRenderer(), tokens))
}

func TestRenderInlineAsText(t *testing.T) {
	tokens := []*token.Token{
		token.NewText("a "),
		token.New(token.KindEmOpen, "em", 1),
		token.NewText("b"),
		token.New(token.KindEmClose, "em", -1),
		token.New(token.KindSoftbreak, "br", 0),
		image("x.png", token.NewText("c")),
	}

	assert.Equal(t, "a b\nc", RenderInlineAsText(tokens))
}

func TestRegisterOverridesRule(t *testing.T) {
	r := NewHTMLRenderer()
	r.Register(token.KindText, func(r *HTMLRenderer, w util.BufWriter, tokens []*token.Token, idx int) {
		_, _ = w.WriteString("[" + tokens[idx].Content + "]")
	})

	assert.Equal(t, "[a]", render(t, r, []*token.Token{inline(token.NewText("a"))}))
}
