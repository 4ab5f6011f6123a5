package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Price is a fixed-point currency amount stored in cents.
// Negotiation math runs on scaled integers so repeated counter-offer
// rounds never accumulate binary floating-point drift.
type Price int64

// FromCents returns a Price from a raw cent count.
func FromCents(c int64) Price {
	return Price(c)
}

// Parse converts a decimal string like "500", "425.5" or "123.45"
// into a Price. At most two fractional digits are accepted.
func Parse(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price string")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if units < 0 {
		return 0, fmt.Errorf("negative price %q", s)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q: fractional part must be 1-2 digits", s)
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	return Price(units*100 + cents), nil
}

// Cents returns the raw cent count.
func (p Price) Cents() int64 {
	return int64(p)
}

// String renders the price with two decimal places, e.g. "425.00".
func (p Price) String() string {
	c := int64(p)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Compact renders whole amounts without a fractional part ("425"),
// falling back to String for amounts with cents. Acceptance detection
// matches message text against both renderings.
func (p Price) Compact() string {
	if p%100 == 0 {
		return strconv.FormatInt(int64(p)/100, 10)
	}
	return p.String()
}

// Display renders the price with a leading dollar sign, e.g. "$425.00".
func (p Price) Display() string {
	return "$" + p.String()
}

// MarshalJSON encodes the price as a plain JSON number with two
// decimal places, matching the level files on disk.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Midpoint returns (a+b)/2 rounded to the nearest cent. Halves round
// up, not half-to-even: a deal can close half a cent dearer than one
// computed with banker's rounding, never cheaper.
func Midpoint(a, b Price) Price {
	sum := int64(a) + int64(b)
	half := sum / 2
	if sum%2 != 0 {
		half++
	}
	return Price(half)
}

// Portion returns pct percent of p, rounded to the nearest cent with
// halves up, same as Midpoint. Used for personality-dependent
// concessions on the negotiation gap.
func Portion(p Price, pct int64) Price {
	v := int64(p) * pct
	q := v / 100
	if 2*(v%100) >= 100 {
		q++
	}
	return Price(q)
}

// Max returns the larger of two prices.
func Max(a, b Price) Price {
	if a > b {
		return a
	}
	return b
}
