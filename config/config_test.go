package config

import (
	"testing"

	"github.com/bgraf/figures/figures"
	"github.com/goodsign/monday"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFigureConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(FigureKey(figures.KeyFigcaption), "title")
	viper.Set(FigureKey(figures.KeyTabindex), true)
	viper.Set(FigureKey(figures.KeyCopyAttrs), "^class$")

	cfg := FigureConfig()
	assert.Len(t, cfg, 3)

	opts, err := FigureOptions()
	require.NoError(t, err)

	assert.Equal(t, figures.CaptionTitle, opts.Figcaption)
	assert.True(t, opts.Tabindex)
	assert.False(t, opts.Link)
	assert.True(t, opts.CopyAttrs.IsSome())
}

func TestFigureOptionsInvalidPattern(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(FigureKey(figures.KeyCopyAttrs), "(")

	_, err := FigureOptions()
	assert.Error(t, err)

	_, err = StoreOptions()
	assert.Error(t, err)
}

func TestStoreOptions(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyLinkify, true)
	viper.Set(KeyHTML, true)
	viper.Set(FigureKey(figures.KeyLazyLoading), "true")

	opts, err := StoreOptions()
	require.NoError(t, err)

	assert.True(t, opts.Linkify)
	assert.True(t, opts.HTML)
	assert.False(t, opts.XHTML)
	assert.True(t, opts.Figures.LazyLoading)
	assert.Equal(t, []string{".md", ".markdown"}, opts.Extensions)
}

func TestDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	assert.Equal(t, ":8000", ServeAddress())
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), ServeLocale())
	assert.False(t, HasJournalDirectory())

	viper.Set(KeyServeLocale, "de_DE")
	assert.Equal(t, monday.Locale(monday.LocaleDeDE), ServeLocale())

	viper.Set(KeyServeLocale, "xx_XX")
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), ServeLocale())
}
