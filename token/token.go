// Package token holds the flat block token stream a markdown document is
// parsed into. Inline content lives in the Children of KindInline tokens.
package token

// Attr is a single name/value attribute. Order of attributes is render order.
type Attr struct {
	Name  string
	Value string
}

type Token struct {
	Kind Kind
	Tag  string

	// Nesting is 1 for opening markers, -1 for closing markers and 0 for
	// self-contained tokens.
	Nesting int

	Attrs    []Attr
	Children []*Token

	// Content is the literal payload of text, code and html tokens. Inline
	// containers keep their raw source text here.
	Content string

	// Info is the info string of fenced code blocks.
	Info string

	Block  bool
	Hidden bool
}

func New(kind Kind, tag string, nesting int) *Token {
	return &Token{
		Kind:    kind,
		Tag:     tag,
		Nesting: nesting,
	}
}

// NewText returns a text token carrying content.
func NewText(content string) *Token {
	t := New(KindText, "", 0)
	t.Content = content

	return t
}

// Retag changes both the kind and the rendered tag of the token.
func (t *Token) Retag(kind Kind, tag string) {
	t.Kind = kind
	t.Tag = tag
}

func (t *Token) AttrIndex(name string) int {
	for i, a := range t.Attrs {
		if a.Name == name {
			return i
		}
	}

	return -1
}

// AttrGet returns the value of the first attribute named name.
func (t *Token) AttrGet(name string) (string, bool) {
	if i := t.AttrIndex(name); i >= 0 {
		return t.Attrs[i].Value, true
	}

	return "", false
}

func (t *Token) AttrPush(name, value string) {
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// AttrSet overwrites the first attribute named name or appends it.
func (t *Token) AttrSet(name, value string) {
	if i := t.AttrIndex(name); i >= 0 {
		t.Attrs[i].Value = value
		return
	}

	t.AttrPush(name, value)
}

// AttrRemove drops every attribute named name.
func (t *Token) AttrRemove(name string) {
	writePos := 0
	for _, a := range t.Attrs {
		if a.Name == name {
			continue
		}

		t.Attrs[writePos] = a
		writePos++
	}

	t.Attrs = t.Attrs[:writePos]
}

// Clone returns a deep copy of the token and its children.
func (t *Token) Clone() *Token {
	c := *t

	if t.Attrs != nil {
		c.Attrs = make([]Attr, len(t.Attrs))
		copy(c.Attrs, t.Attrs)
	}

	c.Children = CloneAll(t.Children)

	return &c
}

func CloneAll(tokens []*Token) []*Token {
	if tokens == nil {
		return nil
	}

	clones := make([]*Token, len(tokens))
	for i, t := range tokens {
		clones[i] = t.Clone()
	}

	return clones
}
