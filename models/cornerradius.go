package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidCornerRadius is returned for malformed or negative radius values.
var ErrInvalidCornerRadius = errors.New("invalid corner radius")

// CornerRadius holds the four corner radii of the window silhouette.
type CornerRadius struct {
	TopLeft     float64 `json:"top_left"`
	TopRight    float64 `json:"top_right"`
	BottomLeft  float64 `json:"bottom_left"`
	BottomRight float64 `json:"bottom_right"`
}

// UniformCornerRadius returns a radius with the same value on every corner.
func UniformCornerRadius(r float64) CornerRadius {
	return CornerRadius{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

// Uniform returns the shared radius when all four corners are equal.
func (c CornerRadius) Uniform() (float64, bool) {
	if c.TopLeft == c.TopRight && c.TopLeft == c.BottomLeft && c.TopLeft == c.BottomRight {
		return c.TopLeft, true
	}
	return 0, false
}

// IsRectangular reports whether no corner is rounded.
func (c CornerRadius) IsRectangular() bool {
	return c.TopLeft <= 0 && c.TopRight <= 0 && c.BottomLeft <= 0 && c.BottomRight <= 0
}

// Validate rejects negative and non-finite radii.
func (c CornerRadius) Validate() error {
	for _, v := range [...]float64{c.TopLeft, c.TopRight, c.BottomLeft, c.BottomRight} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidCornerRadius, v)
		}
	}
	return nil
}

// Culture holds the separators used by the textual CornerRadius form.
type Culture struct {
	ListSeparator    string
	DecimalSeparator string
}

// InvariantCulture uses "," between values and "." as decimal point.
var InvariantCulture = Culture{ListSeparator: ",", DecimalSeparator: "."}

// commaDecimal lists base languages that write 1,5 instead of 1.5.
var commaDecimal = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true, "es": true,
	"fi": true, "fr": true, "hr": true, "hu": true, "id": true, "it": true,
	"lt": true, "lv": true, "nb": true, "nl": true, "pl": true, "pt": true,
	"ro": true, "ru": true, "sk": true, "sl": true, "sr": true, "sv": true,
	"tr": true, "uk": true,
}

// CultureFor returns the separators for a BCP 47 locale such as "de-DE".
// Unknown or empty locales fall back to InvariantCulture.
func CultureFor(locale string) Culture {
	if locale == "" {
		return InvariantCulture
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return InvariantCulture
	}
	base, _ := tag.Base()
	if commaDecimal[base.String()] {
		return Culture{ListSeparator: ";", DecimalSeparator: ","}
	}
	return InvariantCulture
}

// Format renders the radius as one token when uniform, four tokens otherwise
// (top-left, top-right, bottom-left, bottom-right).
func (c CornerRadius) Format(culture Culture) string {
	if v, ok := c.Uniform(); ok {
		return culture.formatFloat(v)
	}
	parts := []string{
		culture.formatFloat(c.TopLeft),
		culture.formatFloat(c.TopRight),
		culture.formatFloat(c.BottomLeft),
		culture.formatFloat(c.BottomRight),
	}
	return strings.Join(parts, culture.ListSeparator+" ")
}

func (c CornerRadius) String() string {
	return c.Format(InvariantCulture)
}

// ParseCornerRadius parses the one- or four-token form produced by Format.
func ParseCornerRadius(s string, culture Culture) (CornerRadius, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CornerRadius{}, fmt.Errorf("%w: empty string", ErrInvalidCornerRadius)
	}

	tokens := strings.Split(s, culture.ListSeparator)
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := culture.parseFloat(strings.TrimSpace(tok))
		if err != nil {
			return CornerRadius{}, fmt.Errorf("%w: %q: %v", ErrInvalidCornerRadius, tok, err)
		}
		values = append(values, v)
	}

	var cr CornerRadius
	switch len(values) {
	case 1:
		cr = UniformCornerRadius(values[0])
	case 4:
		cr = CornerRadius{TopLeft: values[0], TopRight: values[1], BottomLeft: values[2], BottomRight: values[3]}
	default:
		return CornerRadius{}, fmt.Errorf("%w: expected 1 or 4 values, got %d", ErrInvalidCornerRadius, len(values))
	}

	if err := cr.Validate(); err != nil {
		return CornerRadius{}, err
	}
	return cr, nil
}

func (c Culture) formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if c.DecimalSeparator != "." {
		s = strings.Replace(s, ".", c.DecimalSeparator, 1)
	}
	return s
}

func (c Culture) parseFloat(s string) (float64, error) {
	if c.DecimalSeparator != "." {
		s = strings.Replace(s, c.DecimalSeparator, ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
