package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrs(t *testing.T) {
	tok := New(KindImage, "img", 0)
	tok.AttrPush("src", "a.png")
	tok.AttrPush("title", "one")
	tok.AttrPush("title", "two")

	v, ok := tok.AttrGet("title")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = tok.AttrGet("alt")
	assert.False(t, ok)

	tok.AttrSet("src", "b.png")
	tok.AttrSet("alt", "")
	assert.Equal(t, []Attr{
		{Name: "src", Value: "b.png"},
		{Name: "title", Value: "one"},
		{Name: "title", Value: "two"},
		{Name: "alt", Value: ""},
	}, tok.Attrs)

	tok.AttrRemove("title")
	assert.Equal(t, []Attr{{Name: "src", Value: "b.png"}, {Name: "alt", Value: ""}}, tok.Attrs)
	assert.Equal(t, -1, tok.AttrIndex("title"))
}

func TestRetag(t *testing.T) {
	tok := New(KindParagraphOpen, "p", 1)
	tok.Retag(KindFigureOpen, "figure")

	assert.Equal(t, KindFigureOpen, tok.Kind)
	assert.Equal(t, "figure", tok.Tag)
	assert.Equal(t, 1, tok.Nesting)
}

func TestClone(t *testing.T) {
	img := New(KindImage, "img", 0)
	img.AttrPush("src", "a.png")
	img.Children = []*Token{NewText("alt")}

	c := img.Clone()
	c.AttrSet("src", "b.png")
	c.Children[0].Content = "changed"

	v, _ := img.AttrGet("src")
	assert.Equal(t, "a.png", v)
	assert.Equal(t, "alt", img.Children[0].Content)
	assert.Nil(t, CloneAll(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "figure_open", KindFigureOpen.String())
	assert.Equal(t, "inline", KindInline.String())
	assert.Equal(t, "unknown", Kind(200).String())
}
