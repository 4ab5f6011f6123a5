package negotiation

import (
	"github.com/aimarket/haggle-engine/pkg/money"
)

// Concession percentages applied to the remaining gap when the buyer
// has stalled after a prior counter-offer.
const (
	stalledConcessionEager    = 20
	stalledConcessionStubborn = 5
	stalledConcessionDefault  = 10
)

// Concession percentages applied to the full negotiation range for the
// vendor's opening counter when the buyer's offer sits in the middle
// band (50%-80% of the initial price).
const (
	openingConcessionEager    = 60
	openingConcessionStubborn = 20
	openingConcessionDefault  = 40
	openingConcessionLowball  = 30 // patient vendors countering a lowball
)

// NextCounter computes the vendor's next counter-offer for a buyer
// offer that stays inside the negotiation range. The result never
// drops below target and, once a counter-offer exists, never rises
// above it.
func NextCounter(offered, initial, target money.Price, vendorLast, playerLast *money.Price, p Personality) money.Price {
	var counter money.Price

	if vendorLast != nil {
		counter = reviseCounter(offered, initial, target, *vendorLast, playerLast, p)
	} else {
		counter = openingCounter(offered, initial, target, p)
	}

	return money.Max(counter, target)
}

// reviseCounter moves an existing counter-offer toward target. A buyer
// who improved on their previous offer is met at the midpoint; a buyer
// who stalled gets only a personality-sized concession.
func reviseCounter(offered, initial, target, vendorLast money.Price, playerLast *money.Price, p Personality) money.Price {
	if playerLast != nil && *playerLast < offered {
		mid := money.Midpoint(offered, vendorLast)
		// Within the last 10% of the range above target, snap to
		// target and reward the buyer for closing the gap.
		if (mid-target)*100 <= (initial-target)*10 {
			return target
		}
		return money.Max(mid, target)
	}

	pct := int64(stalledConcessionDefault)
	switch p {
	case PersonalityEager:
		pct = stalledConcessionEager
	case PersonalityStubborn:
		pct = stalledConcessionStubborn
	}
	return money.Max(vendorLast-money.Portion(vendorLast-target, pct), target)
}

// openingCounter picks the vendor's first counter-offer from how close
// the buyer's opening bid is to the asking price.
func openingCounter(offered, initial, target money.Price, p Personality) money.Price {
	switch {
	case offered*100 >= initial*80:
		// Close to the ask: meet between target and the offer.
		return money.Max(money.Midpoint(target, offered), target)

	case offered*100 >= initial*50:
		pct := int64(openingConcessionDefault)
		switch p {
		case PersonalityEager:
			pct = openingConcessionEager
		case PersonalityStubborn:
			pct = openingConcessionStubborn
		}
		return money.Max(initial-money.Portion(initial-target, pct), target)

	default:
		// Lowball. Patient vendors still engage; everyone else holds
		// firm at the asking price.
		if p == PersonalityPatient {
			return money.Max(initial-money.Portion(initial-target, openingConcessionLowball), target)
		}
		return initial
	}
}
