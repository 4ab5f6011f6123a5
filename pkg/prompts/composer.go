package prompts

import (
	"fmt"

	"github.com/aimarket/haggle-engine/pkg/chat"
	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/money"
	"github.com/aimarket/haggle-engine/pkg/negotiation"
	"github.com/aimarket/haggle-engine/pkg/session"
)

// Brief is the situational brief for the LLM collaborator: the role,
// the constraints, and the numeric facts the reply must be consistent
// with. The collaborator phrases the reply; it never decides prices.
type Brief struct {
	Branch       negotiation.Outcome
	System       string
	UserMessage  string
	CounterOffer *money.Price // counter the reply must state
	ClosingPrice *money.Price // price the deal closed at
	MustClose    bool         // reply must carry the deal-closed marker
}

// Compose builds the brief for one resolved turn.
func Compose(lvl *level.Level, turns []session.Turn, userMessage string, r negotiation.TurnResult) Brief {
	b := Brief{
		Branch:       r.Outcome,
		UserMessage:  userMessage,
		CounterOffer: r.CounterOffer,
		ClosingPrice: r.ClosingPrice,
		MustClose:    r.Closed,
	}

	role := fmt.Sprintf(vendorRolePrompt, lvl.ProductDescription, lvl.VendorPersonality, lvl.InitialPrice.Display())

	if r.Outcome == negotiation.OutcomeGreeting {
		b.System = role + "\n\n" + greetingInstructions
		return b
	}

	context := ""
	if len(turns) > 0 {
		context = "\n\nPrevious conversation:\n" + FormatTurnLog(turns)
	}

	var instructions string
	switch r.Outcome {
	case negotiation.OutcomeAccepted:
		instructions = fmt.Sprintf(acceptanceInstructions, r.ClosingPrice.Display(), DealClosedMarker)
	case negotiation.OutcomeVendorAccepted:
		instructions = fmt.Sprintf(vendorAcceptInstructions, r.ClosingPrice.Display(), DealClosedMarker)
	case negotiation.OutcomeOverpaid:
		instructions = fmt.Sprintf(overpayInstructions, r.ClosingPrice.Display(), DealClosedMarker)
	case negotiation.OutcomeFullPrice:
		instructions = fmt.Sprintf(fullPriceInstructions, r.ClosingPrice.Display(), DealClosedMarker)
	case negotiation.OutcomeCounter:
		counter := r.CounterOffer.Display()
		instructions = fmt.Sprintf(counterInstructions, r.ExtractedPrice.Display(), counter, counter)
	default:
		instructions = chatInstructions
	}

	b.System = role + "\n\n" + styleGuidelines + context + "\n\n" + instructions
	return b
}

// Messages renders the brief as the chat exchange sent to the LLM.
func (b Brief) Messages() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: b.System},
		{Role: chat.RoleUser, Content: b.UserMessage},
	}
}

// Fallback is the deterministic vendor line used when the collaborator
// fails. It states the same facts the phrased reply would have carried,
// so closure and counter-offers survive an LLM outage.
func (b Brief) Fallback() string {
	switch b.Branch {
	case negotiation.OutcomeGreeting:
		return "Hello! Take a look and let me know what you think."
	case negotiation.OutcomeAccepted, negotiation.OutcomeVendorAccepted,
		negotiation.OutcomeOverpaid, negotiation.OutcomeFullPrice:
		return fmt.Sprintf("%s it is. %s", b.ClosingPrice.Display(), DealClosedMarker)
	case negotiation.OutcomeCounter:
		return fmt.Sprintf("I can't go that low. How about %s?", b.CounterOffer.Display())
	default:
		return "I'm listening. Make me an offer."
	}
}
