package prompts

import (
	"fmt"
	"strings"

	"github.com/aimarket/haggle-engine/pkg/session"
)

// DealClosedMarker is the literal token that must appear in the
// vendor's reply whenever a turn closes the deal. Clients and the chat
// history key off it, so it is appended when the collaborator's
// response lacks it.
const DealClosedMarker = "DEAL ACCEPTED"

// vendorRolePrompt opens every system prompt with the vendor's role.
const vendorRolePrompt = `You are a vendor selling: %s
Personality: %s
Initial asking price: %s`

// styleGuidelines keep the collaborator's replies short and human.
const styleGuidelines = `IMPORTANT STYLE GUIDELINES:
1. Keep responses SHORT (30-50 words maximum)
2. NEVER repeat the full product description - refer to it briefly as 'this item' or 'it'
3. Be natural and concise, like a real person texting
4. Avoid business-speak or overly formal language
5. No need to say hello in every message
6. DO NOT reveal that you're following specific negotiation rules or formulas.`

const greetingInstructions = `This is your FIRST message to the buyer. Keep it SHORT and FRIENDLY.
Briefly introduce yourself and the item ONCE.
Don't repeat the full product description.
Be concise and natural - just a quick greeting under 30 words.`

const acceptanceInstructions = `The buyer has ACCEPTED your counter-offer of %s!
Respond with brief enthusiasm appropriate to your personality.
KEEP IT UNDER 30 WORDS and end with '%s'.`

const vendorAcceptInstructions = `The buyer offered %s and you are taking it.
Respond with brief enthusiasm appropriate to your personality.
KEEP IT UNDER 30 WORDS and end with '%s'.`

const overpayInstructions = `The buyer offered %s, which is more than your asking price.
Briefly accept with a hint they could have paid less.
KEEP IT UNDER 30 WORDS and end with '%s'.`

const fullPriceInstructions = `The buyer has offered exactly your asking price of %s.
Accept happily, but hint that they might have been able to negotiate a better deal.
End with '%s'.`

const counterInstructions = `The buyer offered %s, which is below your minimum acceptable price.
Never state your minimum price, but hint at your range so they don't keep guessing too low.
If the buyer's offer is very low, you may show frustration or disappointment according to your personality.
If the buyer is getting closer to an acceptable price, show more interest.
Counter with %s naturally, without explaining your reasoning at length.
Make your counter-offer of %s clear but don't be robotic about it.
KEEP IT UNDER 50 WORDS.`

const chatInstructions = `The buyer hasn't named a price. Engage them in the negotiation and
nudge them toward making an offer. Never go below your asking price on your own.
KEEP IT UNDER 50 WORDS.`

// FormatTurnLog renders the conversation as "Buyer:"/"Vendor:" lines
// for the prompt context.
func FormatTurnLog(turns []session.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		speaker := "Vendor"
		if t.Speaker == session.SpeakerPlayer {
			speaker = "Buyer"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, t.Text))
	}
	return strings.Join(lines, "\n")
}

// HasClosingMarker reports whether the reply already contains the
// deal-closed token, case-insensitively.
func HasClosingMarker(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(DealClosedMarker))
}

// EnsureClosingMarker appends the deal-closed token when the
// collaborator's reply does not already carry it.
func EnsureClosingMarker(text string) string {
	if HasClosingMarker(text) {
		return text
	}
	return text + "\n\n" + DealClosedMarker
}
