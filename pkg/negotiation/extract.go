package negotiation

import (
	"regexp"

	"github.com/aimarket/haggle-engine/pkg/money"
)

// pricePattern matches a decimal amount with an optional dollar sign
// and an optional two-digit fractional part. The scan is positional:
// the first number in the message wins, whatever its form, so
// "maybe 50, fine, $40" extracts 50. A one-digit fraction is not part
// of the amount ("$40.5" extracts 40.00).
var pricePattern = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)

// ExtractPrice scans free text for the first monetary amount: a decimal
// number optionally preceded by "$" or followed by "dollars". No
// plausibility bounds are applied; zero and very large amounts are
// returned as-is for the resolver to classify.
func ExtractPrice(text string) (money.Price, bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	p, err := money.Parse(m[1])
	if err != nil {
		return 0, false
	}
	return p, true
}
