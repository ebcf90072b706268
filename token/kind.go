package token

// Kind identifies the role of a token in the stream.
type Kind uint8

const (
	KindText Kind = iota
	KindInline
	KindParagraphOpen
	KindParagraphClose
	KindHeadingOpen
	KindHeadingClose
	KindBlockquoteOpen
	KindBlockquoteClose
	KindBulletListOpen
	KindBulletListClose
	KindOrderedListOpen
	KindOrderedListClose
	KindListItemOpen
	KindListItemClose
	KindHr
	KindCodeBlock
	KindFence
	KindHTMLBlock
	KindHTMLInline
	KindCodeInline
	KindSoftbreak
	KindHardbreak
	KindEmOpen
	KindEmClose
	KindStrongOpen
	KindStrongClose
	KindLinkOpen
	KindLinkClose
	KindImage
	KindFigureOpen
	KindFigureClose
	KindFigcaptionOpen
	KindFigcaptionClose
)

var kindNames = [...]string{
	KindText:             "text",
	KindInline:           "inline",
	KindParagraphOpen:    "paragraph_open",
	KindParagraphClose:   "paragraph_close",
	KindHeadingOpen:      "heading_open",
	KindHeadingClose:     "heading_close",
	KindBlockquoteOpen:   "blockquote_open",
	KindBlockquoteClose:  "blockquote_close",
	KindBulletListOpen:   "bullet_list_open",
	KindBulletListClose:  "bullet_list_close",
	KindOrderedListOpen:  "ordered_list_open",
	KindOrderedListClose: "ordered_list_close",
	KindListItemOpen:     "list_item_open",
	KindListItemClose:    "list_item_close",
	KindHr:               "hr",
	KindCodeBlock:        "code_block",
	KindFence:            "fence",
	KindHTMLBlock:        "html_block",
	KindHTMLInline:       "html_inline",
	KindCodeInline:       "code_inline",
	KindSoftbreak:        "softbreak",
	KindHardbreak:        "hardbreak",
	KindEmOpen:           "em_open",
	KindEmClose:          "em_close",
	KindStrongOpen:       "strong_open",
	KindStrongClose:      "strong_close",
	KindLinkOpen:         "link_open",
	KindLinkClose:        "link_close",
	KindImage:            "image",
	KindFigureOpen:       "figure_open",
	KindFigureClose:      "figure_close",
	KindFigcaptionOpen:   "figcaption_open",
	KindFigcaptionClose:  "figcaption_close",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}
