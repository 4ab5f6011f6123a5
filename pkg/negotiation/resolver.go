package negotiation

import (
	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/money"
)

// Outcome names the resolver branch that fired for a turn.
type Outcome int

const (
	// OutcomeGreeting is the first turn of a session; no price logic runs.
	OutcomeGreeting Outcome = iota
	// OutcomeAccepted closes the deal at the vendor's standing counter-offer.
	OutcomeAccepted
	// OutcomeOverpaid closes the deal above the asking price.
	OutcomeOverpaid
	// OutcomeFullPrice closes the deal at exactly the asking price.
	OutcomeFullPrice
	// OutcomeVendorAccepted closes the deal because the vendor's next
	// counter-offer would equal the player's offer; there is nothing
	// left to haggle over.
	OutcomeVendorAccepted
	// OutcomeCounter continues negotiating with a new counter-offer.
	OutcomeCounter
	// OutcomeChat continues the conversation; no price was offered.
	OutcomeChat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGreeting:
		return "greeting"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeOverpaid:
		return "overpaid"
	case OutcomeFullPrice:
		return "full_price"
	case OutcomeVendorAccepted:
		return "vendor_accepted"
	case OutcomeCounter:
		return "counter"
	default:
		return "chat"
	}
}

// TurnResult is the engine's decision for one player turn. The caller
// applies it to the session atomically and persists the outcome.
type TurnResult struct {
	Outcome        Outcome
	Personality    Personality
	ExtractedPrice *money.Price // price found in the message, if any
	Accepted       bool         // player accepted the standing counter-offer
	Closed         bool         // the deal closed this turn
	ClosingPrice   *money.Price // set only when Closed
	CounterOffer   *money.Price // updated vendor counter-offer, nil = unchanged
	PlayerOffer    *money.Price // updated player offer, nil = unchanged
	Reward         *Reward      // set only when Closed
}

// Resolve runs one negotiation turn. It is a pure function of the
// level, the message text, the two standing offers, and whether the
// vendor has spoken yet. Branches are evaluated in fixed priority:
// greeting, acceptance, no-price chat, overpay, full price, counter.
func Resolve(lvl *level.Level, message string, playerLast, vendorLast *money.Price, firstTurn bool) TurnResult {
	personality := ClassifyPersonality(lvl.VendorPersonality)

	if firstTurn {
		// Greeting-only exchange. Any price in the message is ignored;
		// no price facts are set.
		return TurnResult{Outcome: OutcomeGreeting, Personality: personality}
	}

	var extracted *money.Price
	if p, ok := ExtractPrice(message); ok {
		extracted = &p
	}

	if vendorLast != nil && IsAccepting(message, extracted, vendorLast) {
		return closeDeal(TurnResult{
			Outcome:        OutcomeAccepted,
			Personality:    personality,
			ExtractedPrice: extracted,
			Accepted:       true,
		}, *vendorLast, lvl)
	}

	if extracted == nil {
		return TurnResult{Outcome: OutcomeChat, Personality: personality}
	}

	offered := *extracted

	if offered > lvl.InitialPrice {
		r := closeDeal(TurnResult{
			Outcome:        OutcomeOverpaid,
			Personality:    personality,
			ExtractedPrice: extracted,
		}, offered, lvl)
		r.PlayerOffer = &offered
		return r
	}

	if offered == lvl.InitialPrice {
		r := closeDeal(TurnResult{
			Outcome:        OutcomeFullPrice,
			Personality:    personality,
			ExtractedPrice: extracted,
		}, offered, lvl)
		r.PlayerOffer = &offered
		return r
	}

	counter := NextCounter(offered, lvl.InitialPrice, lvl.TargetPrice, vendorLast, playerLast, personality)
	if counter == offered {
		r := closeDeal(TurnResult{
			Outcome:        OutcomeVendorAccepted,
			Personality:    personality,
			ExtractedPrice: extracted,
		}, offered, lvl)
		r.PlayerOffer = &offered
		return r
	}
	return TurnResult{
		Outcome:        OutcomeCounter,
		Personality:    personality,
		ExtractedPrice: extracted,
		CounterOffer:   &counter,
		PlayerOffer:    &offered,
	}
}

func closeDeal(r TurnResult, closing money.Price, lvl *level.Level) TurnResult {
	r.Closed = true
	r.ClosingPrice = &closing
	reward := CalculateReward(closing, lvl.InitialPrice, lvl.TargetPrice)
	r.Reward = &reward
	return r
}
