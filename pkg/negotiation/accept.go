package negotiation

import (
	"strings"

	"github.com/aimarket/haggle-engine/pkg/money"
)

// Phrases that signal acceptance on their own. These are deliberately
// loose: "ok, what about $50?" reads as acceptance too. False positives
// are the designed failure mode of this heuristic; changing it would
// silently alter game balance.
var acceptancePhrases = []string{
	"yes",
	"ok",
	"deal",
	"accept",
	"agree",
	"sounds fair",
	"i'll take it",
	"that works",
}

// Phrases that only signal acceptance when the message also repeats the
// vendor's standing counter-offer.
var commitmentPhrases = []string{
	"will do",
	"i can do",
	"let's do",
}

// IsAccepting reports whether the player's message accepts the vendor's
// outstanding counter-offer. With no outstanding offer, only the plain
// phrase set can signal acceptance.
func IsAccepting(text string, extracted, vendorOffer *money.Price) bool {
	lower := strings.ToLower(text)

	if vendorOffer != nil && extracted != nil && *extracted == *vendorOffer {
		// Prices are fixed-point cents, so the 0.01 tolerance of the
		// acceptance rule collapses to cent equality.
		return true
	}

	if containsAny(lower, acceptancePhrases) {
		return true
	}

	if vendorOffer != nil && containsOfferNumeral(lower, *vendorOffer) &&
		containsAny(lower, commitmentPhrases) {
		return true
	}

	return false
}

// containsOfferNumeral checks both renderings of the offer, so "425"
// and "425.00" each count as repeating a $425.00 counter-offer.
func containsOfferNumeral(lower string, offer money.Price) bool {
	return strings.Contains(lower, offer.String()) ||
		strings.Contains(lower, offer.Compact())
}
