// Package locale provides the calendar names used for locale-sensitive
// date rendering and parsing.
// The name tables are embedded in the binary and loaded once on package init.
package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// ErrUnsupported is returned when no name table matches a requested locale.
var ErrUnsupported = errors.New("locale: unsupported locale")

// Names holds the calendar names of a single language.
// Weekday slices are indexed by time.Weekday, starting on Sunday.
type Names struct {
	Tag           language.Tag `toml:"-"`
	Months        []string     `toml:"months"`
	ShortMonths   []string     `toml:"short_months"`
	Weekdays      []string     `toml:"weekdays"`
	ShortWeekdays []string     `toml:"short_weekdays"`
}

func (n *Names) validate() error {
	switch {
	case len(n.Months) != 12:
		return fmt.Errorf("%s: want 12 months, got %d", n.Tag, len(n.Months))
	case len(n.ShortMonths) != 12:
		return fmt.Errorf("%s: want 12 short months, got %d", n.Tag, len(n.ShortMonths))
	case len(n.Weekdays) != 7:
		return fmt.Errorf("%s: want 7 weekdays, got %d", n.Tag, len(n.Weekdays))
	case len(n.ShortWeekdays) != 7:
		return fmt.Errorf("%s: want 7 short weekdays, got %d", n.Tag, len(n.ShortWeekdays))
	}
	return nil
}

var (
	//go:embed locales.toml
	namesData []byte

	tags    []language.Tag
	names   []*Names
	matcher language.Matcher
)

func panicOnErr(err error) {
	if err != nil {
		panic(fmt.Errorf("locale: %w", err))
	}
}

func init() {
	panicOnErr(load(namesData))
}

// load decodes a name table document, replacing the package state.
// English is always placed first, so it is what the matcher
// reports on a failed match.
func load(data []byte) error {
	var doc map[string]*Names
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if _, ok := doc["en"]; !ok {
		return errors.New("missing en table")
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "en" || keys[j] == "en" {
			return keys[i] == "en"
		}
		return keys[i] < keys[j]
	})

	newTags := make([]language.Tag, len(keys))
	newNames := make([]*Names, len(keys))
	for i, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			return fmt.Errorf("table %q: %w", k, err)
		}
		n := doc[k]
		n.Tag = tag
		if err = n.validate(); err != nil {
			return err
		}
		newTags[i], newNames[i] = tag, n
	}

	tags, names = newTags, newNames
	matcher = language.NewMatcher(tags)
	return nil
}

// Lookup returns the name table best matching tag.
// A table is only returned when it shares the base language of tag;
// regional variants such as es-MX resolve to their base table.
// Otherwise ErrUnsupported is returned, there is no fallback to a default language.
func Lookup(tag language.Tag) (*Names, error) {
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, tag)
	}
	return names[idx], nil
}

// Supported returns the tags of all available name tables.
func Supported() []language.Tag {
	out := make([]language.Tag, len(tags))
	copy(out, tags)
	return out
}
