package figures

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bgraf/figures/option"
)

// CaptionMode selects where a figure caption is taken from.
type CaptionMode int

const (
	CaptionNone CaptionMode = iota
	CaptionTitle
	CaptionAlt
)

func (m CaptionMode) String() string {
	switch m {
	case CaptionTitle:
		return "title"
	case CaptionAlt:
		return "alt"
	}

	return "none"
}

type Options struct {
	// DataType adds data-type="image" to figures.
	DataType bool

	Figcaption CaptionMode

	// KeepAlt leaves the alt text on the image when it is used as caption.
	KeepAlt bool

	// LazyLoading adds loading="lazy" to images.
	LazyLoading bool

	// Link wraps bare images in a link to their own source.
	Link bool

	// Tabindex numbers figures, starting at 1 for every render.
	Tabindex bool

	// CopyAttrs copies image attributes whose names match onto the figure.
	CopyAttrs option.Option[*regexp.Regexp]
}

// Keys of the figure settings in config files and front matter.
const (
	KeyDataType    = "data_type"
	KeyFigcaption  = "figcaption"
	KeyKeepAlt     = "keep_alt"
	KeyLazyLoading = "lazy_loading"
	KeyLink        = "link"
	KeyTabindex    = "tabindex"
	KeyCopyAttrs   = "copy_attrs"
)

var Keys = []string{
	KeyDataType,
	KeyFigcaption,
	KeyKeepAlt,
	KeyLazyLoading,
	KeyLink,
	KeyTabindex,
	KeyCopyAttrs,
}

// Config holds raw setting values as found in config files or front
// matter, keyed by one of Keys. Values are bool or string; figcaption and
// copy_attrs also accept the other forms understood by ParseCaptionMode and
// ParseCopyAttrs.
type Config map[string]interface{}

// ConfigFrom converts a decoded YAML mapping to a Config.
func ConfigFrom(v interface{}) (Config, bool) {
	switch m := v.(type) {
	case Config:
		return m, true
	case map[string]interface{}:
		return Config(m), true
	case map[interface{}]interface{}:
		cfg := make(Config, len(m))
		for k, v := range m {
			cfg[fmt.Sprint(k)] = v
		}
		return cfg, true
	}

	return nil, false
}

func (c Config) Options() (Options, error) {
	return Options{}.With(c)
}

// normalizeKey accepts snake case, kebab case and camel case spellings.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "")
	return strings.ReplaceAll(key, "_", "")
}

// With returns a copy of o with the settings present in cfg applied.
func (o Options) With(cfg Config) (Options, error) {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := cfg[k]

		var err error
		switch normalizeKey(k) {
		case "datatype":
			o.DataType, err = parseBool(k, v)
		case "figcaption":
			o.Figcaption = ParseCaptionMode(v)
		case "keepalt":
			o.KeepAlt, err = parseBool(k, v)
		case "lazyloading":
			o.LazyLoading, err = parseBool(k, v)
		case "link":
			o.Link, err = parseBool(k, v)
		case "tabindex":
			o.Tabindex, err = parseBool(k, v)
		case "copyattrs":
			o.CopyAttrs, err = ParseCopyAttrs(v)
		default:
			err = fmt.Errorf("unknown figure option '%s'", k)
		}

		if err != nil {
			return o, err
		}
	}

	return o, nil
}

func parseBool(key string, v interface{}) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		if strings.TrimSpace(b) == "" {
			return false, nil
		}

		value, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("option '%s': %w", key, err)
		}

		return value, nil
	}

	return false, fmt.Errorf("option '%s': expected boolean, got %T", key, v)
}

// ParseCaptionMode decodes the figcaption setting. "title" selects title
// captions, true or "alt" select alt captions. Any other value disables
// captions.
func ParseCaptionMode(v interface{}) CaptionMode {
	switch m := v.(type) {
	case bool:
		if m {
			return CaptionAlt
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "title":
			return CaptionTitle
		case "alt", "true":
			return CaptionAlt
		}
	case CaptionMode:
		return m
	}

	return CaptionNone
}

// IsKnownCaptionMode reports whether v is one of the accepted spellings of
// the figcaption setting, including the disabling ones.
func IsKnownCaptionMode(v interface{}) bool {
	switch m := v.(type) {
	case nil, bool, CaptionMode:
		return true
	case string:
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "", "title", "alt", "true", "false":
			return true
		}
	}

	return false
}

var matchAll = regexp.MustCompile("")

// ParseCopyAttrs decodes the copy_attrs setting: true copies every
// attribute, a string is a regular expression matched against attribute
// names, false or the empty string disables copying.
func ParseCopyAttrs(v interface{}) (option.Option[*regexp.Regexp], error) {
	switch p := v.(type) {
	case nil:
		return option.None[*regexp.Regexp](), nil
	case bool:
		if p {
			return option.Some(matchAll), nil
		}
		return option.None[*regexp.Regexp](), nil
	case *regexp.Regexp:
		if p == nil {
			return option.None[*regexp.Regexp](), nil
		}
		return option.Some(p), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "", "false":
			return option.None[*regexp.Regexp](), nil
		case "true":
			return option.Some(matchAll), nil
		}

		re, err := regexp.Compile(p)
		if err != nil {
			return option.None[*regexp.Regexp](), fmt.Errorf("copy attributes pattern: %w", err)
		}

		return option.Some(re), nil
	}

	return option.None[*regexp.Regexp](), fmt.Errorf("copy attributes: unsupported value of type %T", v)
}
