package render

import (
	"html/template"
	"path"
	"time"

	"github.com/goodsign/monday"
)

// MakeTemplateFuncmap returns the helpers available to page templates.
// Dates are formatted for locale.
func MakeTemplateFuncmap(locale monday.Locale) template.FuncMap {
	return template.FuncMap{
		"dateDisplay": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return monday.Format(t, "2 January 2006", locale)
		},

		"yearMonthDisplay": func(t time.Time) string {
			return monday.Format(t, "January 2006", locale)
		},

		"figureLabel": FigureLabel,
	}
}

// FigureLabel names a figure by its caption, its alt text or the file name
// of its image, whichever is present first.
func FigureLabel(fig Figure) string {
	switch {
	case fig.Caption != "":
		return fig.Caption
	case fig.Alt != "":
		return fig.Alt
	}

	return path.Base(fig.Source)
}
