package config

import (
	"fmt"
	"log"

	"github.com/bgraf/figures/document"
	"github.com/bgraf/figures/figures"
	"github.com/goodsign/monday"
	"github.com/spf13/viper"
)

var (
	KeyJournalDirectory = "journal.directory"
	KeyLinkify          = "markdown.linkify"
	KeyHTML             = "markdown.html"
	KeyXHTML            = "markdown.xhtml"
	KeyServeAddress     = "serve.address"
	KeyServeLocale      = "serve.locale"
)

// FigureKey returns the config key of a figure setting.
func FigureKey(name string) string {
	return "figures." + name
}

func SetDefaults() {
	viper.SetDefault(KeyServeAddress, DefaultServeAddress())
	viper.SetDefault(KeyServeLocale, string(monday.LocaleEnUS))
}

func HasJournalDirectory() bool {
	return viper.IsSet(KeyJournalDirectory) && viper.GetString(KeyJournalDirectory) != ""
}

func JournalDirectory() string {
	return viper.GetString(KeyJournalDirectory)
}

func Linkify() bool {
	return viper.GetBool(KeyLinkify)
}

func HTML() bool {
	return viper.GetBool(KeyHTML)
}

func XHTML() bool {
	return viper.GetBool(KeyXHTML)
}

func DefaultServeAddress() string {
	return ":8000"
}

func ServeAddress() string {
	return viper.GetString(KeyServeAddress)
}

// ServeLocale returns the locale dates are displayed in. Unknown locales
// fall back to en_US.
func ServeLocale() monday.Locale {
	locale := monday.Locale(viper.GetString(KeyServeLocale))
	for _, l := range monday.ListLocales() {
		if l == locale {
			return locale
		}
	}

	log.Printf("unknown locale '%s', using %s", locale, monday.LocaleEnUS)

	return monday.LocaleEnUS
}

// FigureConfig collects the figure settings that are set in the config
// file, the environment or by flags.
func FigureConfig() figures.Config {
	cfg := figures.Config{}

	for _, key := range figures.Keys {
		if !viper.IsSet(FigureKey(key)) {
			continue
		}

		value := viper.Get(FigureKey(key))
		if key == figures.KeyFigcaption && !figures.IsKnownCaptionMode(value) {
			log.Printf("unknown figcaption value '%v', captions disabled", value)
		}

		cfg[key] = value
	}

	return cfg
}

func FigureOptions() (figures.Options, error) {
	opts, err := FigureConfig().Options()
	if err != nil {
		return opts, fmt.Errorf("figure options: %w", err)
	}

	return opts, nil
}

// StoreOptions assembles the document store options from the configuration.
func StoreOptions() (document.StoreOptions, error) {
	opts := document.DefaultStoreOptions()

	var err error
	opts.Figures, err = FigureOptions()
	if err != nil {
		return opts, err
	}

	opts.Linkify = Linkify()
	opts.HTML = HTML()
	opts.XHTML = XHTML()

	return opts, nil
}
