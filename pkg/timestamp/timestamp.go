// Package timestamp renders timestamps the way the scoreboard displays them.
//
// Two layouts exist, both following the Czech (cs-CZ) convention of day before month, period
// separated date fields and a 24 hour clock:
//
//	short:   D.M. HH:MM             5.3. 08:30
//	tooltip: DD.MM.YYYY. HH:MM:SS   05.03.2024. 08:30:00
//
// Fields are extracted from the parsed time explicitly, no locale data of the host is consulted.
package timestamp

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is rendered by FormatShort and FormatTooltip for inputs that cannot be parsed.
const InvalidDate = "Invalid Date"

// ErrUnsupportedLocale is returned by NewFormatter for any locale not using the Czech conventions.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Locale is the only locale formatters are available for.
var Locale = language.MustParse("cs-CZ")

var defaultFormatter = &Formatter{
	locale:   Locale,
	location: time.UTC,
}

// Formatter formats timestamps in a fixed location. It is immutable and safe for concurrent use.
type Formatter struct {
	locale   language.Tag
	location *time.Location
}

// NewFormatter creates a Formatter for the given locale, rendering times in location (UTC if nil).
func NewFormatter(locale language.Tag, location *time.Location) (*Formatter, error) {
	base, _ := locale.Base()
	czech, _ := language.Czech.Base()

	if base != czech {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLocale, locale)
	}

	if location == nil {
		location = time.UTC
	}

	return &Formatter{
		locale:   locale,
		location: location,
	}, nil
}

// Default returns the formatter used by FormatShort and FormatTooltip (cs-CZ, UTC).
func Default() *Formatter {
	return defaultFormatter
}

// Locale returns the locale the formatter was created for.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// Location returns the location times are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.location
}

// Parse parses ts into the formatter's location, see the package level Parse.
func (f *Formatter) Parse(ts string) (time.Time, error) {
	return Parse(ts, f.location)
}

// Short formats ts as "D.M. HH:MM".
func (f *Formatter) Short(ts string) (string, error) {
	t, err := f.Parse(ts)
	if err != nil {
		return "", err
	}

	return f.ShortTime(t), nil
}

// Tooltip formats ts as "DD.MM.YYYY. HH:MM:SS".
func (f *Formatter) Tooltip(ts string) (string, error) {
	t, err := f.Parse(ts)
	if err != nil {
		return "", err
	}

	return f.TooltipTime(t), nil
}

// ShortTime formats t as "D.M. HH:MM" after converting it to the formatter's location.
func (f *Formatter) ShortTime(t time.Time) string {
	t = t.In(f.location)

	return fmt.Sprintf("%d.%d. %02d:%02d", t.Day(), int(t.Month()), t.Hour(), t.Minute())
}

// TooltipTime formats t as "DD.MM.YYYY. HH:MM:SS" after converting it to the formatter's location.
func (f *Formatter) TooltipTime(t time.Time) string {
	t = t.In(f.location)

	return fmt.Sprintf("%02d.%02d.%04d. %02d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year(),
		t.Hour(), t.Minute(), t.Second(),
	)
}

// FormatShort formats ts as "D.M. HH:MM" using the default formatter, returning InvalidDate for
// input that cannot be parsed.
func FormatShort(ts string) string {
	if s, err := defaultFormatter.Short(ts); err == nil {
		return s
	}

	return InvalidDate
}

// FormatTooltip formats ts as "DD.MM.YYYY. HH:MM:SS" using the default formatter, returning
// InvalidDate for input that cannot be parsed.
func FormatTooltip(ts string) string {
	if s, err := defaultFormatter.Tooltip(ts); err == nil {
		return s
	}

	return InvalidDate
}
