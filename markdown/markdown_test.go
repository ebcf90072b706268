package markdown

import (
	"context"
	"errors"
	"testing"

	"github.com/bgraf/figures/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []*token.Token) []token.Kind {
	result := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		result[i] = t.Kind
	}

	return result
}

func noop(ctx context.Context, md *Markdown, state *State) error {
	return nil
}

func TestRuler(t *testing.T) {
	r := &Ruler{}
	r.Push("a", noop)
	r.Push("c", noop)

	require.NoError(t, r.Before("c", "b", noop))
	require.NoError(t, r.After("c", "d", noop))
	require.NoError(t, r.Before("a", "first", noop))

	assert.Equal(t, []string{"first", "a", "b", "c", "d"}, r.Names())
	assert.Error(t, r.Before("missing", "x", noop))
	assert.Error(t, r.After("missing", "x", noop))
}

func TestRulerStopsOnError(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	ruleErr := errors.New("failed")
	var ran []string

	md.Core().Push("fail", func(ctx context.Context, md *Markdown, state *State) error {
		ran = append(ran, "fail")
		return ruleErr
	})
	md.Core().Push("after", func(ctx context.Context, md *Markdown, state *State) error {
		ran = append(ran, "after")
		return nil
	})

	_, err = md.Parse(context.Background(), []byte("text"))
	assert.ErrorIs(t, err, ruleErr)
	assert.Equal(t, []string{"fail"}, ran)
}

func TestParseCancelled(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = md.Parse(ctx, []byte("text"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseParagraphImage(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	state, err := md.Parse(context.Background(), []byte("![alt *text*](fig.png \"a title\")\n"))
	require.NoError(t, err)

	require.Equal(t, []token.Kind{token.KindParagraphOpen, token.KindInline, token.KindParagraphClose}, kinds(state.Tokens))
	assert.True(t, state.Tokens[0].Block)

	children := state.Tokens[1].Children
	require.Len(t, children, 1)

	img := children[0]
	assert.Equal(t, token.KindImage, img.Kind)
	assert.Equal(t, []token.Attr{
		{Name: "src", Value: "fig.png"},
		{Name: "alt", Value: ""},
		{Name: "title", Value: "a title"},
	}, img.Attrs)
	assert.Equal(t, []token.Kind{token.KindText, token.KindEmOpen, token.KindText, token.KindEmClose}, kinds(img.Children))
}

func TestParseLinkedImage(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	state, err := md.Parse(context.Background(), []byte("[![](fig.png)](link.html)"))
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{token.KindLinkOpen, token.KindImage, token.KindLinkClose}, kinds(state.Tokens[1].Children))
}

func TestParseFrontMatter(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	state, err := md.Parse(context.Background(), []byte("---\ntitle: Hello\n---\nbody\n"))
	require.NoError(t, err)

	assert.Equal(t, "Hello", state.Meta["title"])
	assert.Equal(t, []token.Kind{token.KindParagraphOpen, token.KindInline, token.KindParagraphClose}, kinds(state.Tokens))
}

func TestParseInline(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	tokens, err := md.ParseInline(context.Background(), "Image from [source](to)")
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	inline := tokens[0]
	assert.Equal(t, token.KindInline, inline.Kind)
	assert.Equal(t, []token.Kind{token.KindText, token.KindLinkOpen, token.KindText, token.KindLinkClose}, kinds(inline.Children))
	assert.Equal(t, "Image from ", inline.Children[0].Content)

	tokens, err = md.ParseInline(context.Background(), "# not a heading")
	require.NoError(t, err)
	assert.Equal(t, "# not a heading", tokens[0].Children[0].Content)

	tokens, err = md.ParseInline(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tokens[0].Children)
}

func TestParseInlineKeepsBlanks(t *testing.T) {
	md, err := New()
	require.NoError(t, err)

	tokens, err := md.ParseInline(context.Background(), "  ")
	require.NoError(t, err)
	require.Len(t, tokens[0].Children, 1)
	assert.Equal(t, "  ", tokens[0].Children[0].Content)

	tokens, err = md.ParseInline(context.Background(), "\t a *b* ")
	require.NoError(t, err)

	children := tokens[0].Children
	assert.Equal(t, []token.Kind{
		token.KindText,
		token.KindEmOpen,
		token.KindText,
		token.KindEmClose,
		token.KindText,
	}, kinds(children))
	assert.Equal(t, "\t a ", children[0].Content)
	assert.Equal(t, " ", children[4].Content)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		src      string
		expected string
	}{
		{"paragraphs", nil, "one\ntwo\n\nthree", "<p>one\ntwo</p>\n<p>three</p>\n"},
		{"escaping", nil, `a < b & \*c\*`, "<p>a &lt; b &amp; *c*</p>\n"},
		{"emphasis", nil, "*a* **b**", "<p><em>a</em> <strong>b</strong></p>\n"},
		{"heading", nil, "# Title", "<h1>Title</h1>\n"},
		{"hr", nil, "a\n\n***", "<p>a</p>\n<hr>\n"},
		{"xhtml", []Option{WithXHTML()}, "![](a.png)\n\n***", "<p><img src=\"a.png\" alt=\"\" /></p>\n<hr />\n"},
		{"fence", nil, "```go\nx := 1\n```", "<pre><code class=\"language-go\">x := 1\n</code></pre>\n"},
		{"code block", nil, "    code\n", "<pre><code>code\n</code></pre>\n"},
		{"tight list", nil, "- a\n- b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"},
		{"ordered list", nil, "3. a", "<ol start=\"3\">\n<li>a</li>\n</ol>\n"},
		{"blockquote", nil, "> quote", "<blockquote>\n<p>quote</p>\n</blockquote>\n"},
		{"autolink", nil, "<http://example.com>", "<p><a href=\"http://example.com\">http://example.com</a></p>\n"},
		{"no linkify", nil, "see www.example.com", "<p>see www.example.com</p>\n"},
		{"linkify", []Option{WithLinkify()}, "see www.example.com now", "<p>see <a href=\"http://www.example.com\">www.example.com</a> now</p>\n"},
		{"html block escaped", nil, "<div>x</div>", "<p>&lt;div&gt;x&lt;/div&gt;</p>\n"},
		{"inline html escaped", nil, "a <b>c</b>", "<p>a &lt;b&gt;c&lt;/b&gt;</p>\n"},
		{"html block", []Option{WithHTML()}, "<div>x</div>\n", "<div>x</div>\n"},
		{"inline html", []Option{WithHTML()}, "a <b>c</b>", "<p>a <b>c</b></p>\n"},
		{"linkify skips links", []Option{WithLinkify()}, "[www.example.com](x.html)", "<p><a href=\"x.html\">www.example.com</a></p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := New(tt.opts...)
			require.NoError(t, err)

			got, err := md.Render(context.Background(), []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

type extenderFunc func(md *Markdown) error

func (f extenderFunc) Extend(md *Markdown) error {
	return f(md)
}

func TestNewReportsExtensionErrors(t *testing.T) {
	_, err := New(WithExtensions(extenderFunc(func(md *Markdown) error {
		return md.Core().Before("missing", "x", noop)
	})))

	assert.Error(t, err)
}
