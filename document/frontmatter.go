package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

type FrontMatter struct {
	Title string   `yaml:"title,omitempty"`
	Date  YamlDate `yaml:"date,omitempty"`
	GUID  string   `yaml:"guid,omitempty"`
}

// decodeFrontMatter reads the known fields from the front matter mapping.
// Unknown fields, including the figure settings, are ignored here.
func decodeFrontMatter(m map[string]interface{}) (FrontMatter, error) {
	fm := FrontMatter{}

	raw, err := yaml.Marshal(m)
	if err != nil {
		return fm, fmt.Errorf("encode YAML: %w", err)
	}

	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return fm, fmt.Errorf("parse YAML: %w", err)
	}

	return fm, nil
}

func populateFromFrontMatter(doc *Document, m map[string]interface{}) error {
	if len(m) == 0 {
		return nil
	}

	fm, err := decodeFrontMatter(m)
	if err != nil {
		return err
	}

	doc.HasFrontMatter = true
	doc.Title = fm.Title
	doc.Date = time.Time(fm.Date)

	if fm.GUID != "" {
		doc.GUID, err = uuid.Parse(fm.GUID)
		if err != nil {
			return fmt.Errorf("parse guid: %w", err)
		}
	}

	return nil
}

type YamlDate time.Time

func (t *YamlDate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var txt string
	err := unmarshal(&txt)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", txt)
	if err != nil {
		return err
	}

	*t = YamlDate(date)
	return nil
}

func (t YamlDate) MarshalYAML() (interface{}, error) {
	ret := time.Time(t).Format("2006-01-02")
	return ret, nil
}

func (t YamlDate) IsZero() bool {
	return time.Time(t).IsZero()
}
