package figures

import (
	"regexp"
	"strconv"

	"github.com/bgraf/figures/token"
)

func (c *converter) augment(figure, image *token.Token) {
	if filter := c.options.CopyAttrs.GetOr(nil); filter != nil {
		copyAttrs(figure, image, filter)
	}

	if c.options.Tabindex {
		figure.AttrPush("tabindex", strconv.Itoa(c.tabIndex))
		c.tabIndex++
	}

	if c.options.LazyLoading {
		image.AttrSet("loading", "lazy")
	}
}

// copyAttrs puts the image attributes whose names match filter on the
// figure, replacing figure attributes of the same name. Attributes already
// on the figure that no image attribute replaces, such as data-type, are
// kept rather than dropped with the rest of the list.
func copyAttrs(figure, image *token.Token, filter *regexp.Regexp) {
	var copied []token.Attr

	for _, a := range image.Attrs {
		if filter.MatchString(a.Name) {
			copied = append(copied, a)
		}
	}

	for _, a := range copied {
		figure.AttrRemove(a.Name)
	}

	figure.Attrs = append(figure.Attrs, copied...)
}
