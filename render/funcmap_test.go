package render

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
)

func TestFigureLabel(t *testing.T) {
	assert.Equal(t, "caption", FigureLabel(Figure{Caption: "caption", Alt: "alt", Source: "a/b.png"}))
	assert.Equal(t, "alt", FigureLabel(Figure{Alt: "alt", Source: "a/b.png"}))
	assert.Equal(t, "b.png", FigureLabel(Figure{Source: "a/b.png"}))
}

func TestTemplateFuncmapDates(t *testing.T) {
	funcs := MakeTemplateFuncmap(monday.LocaleDeDE)
	date := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)

	dateDisplay := funcs["dateDisplay"].(func(time.Time) string)
	assert.Equal(t, "14 März 2021", dateDisplay(date))
	assert.Equal(t, "", dateDisplay(time.Time{}))

	yearMonth := funcs["yearMonthDisplay"].(func(time.Time) string)
	assert.Equal(t, "März 2021", yearMonth(date))
}
