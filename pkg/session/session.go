package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/aimarket/haggle-engine/pkg/money"
	"github.com/aimarket/haggle-engine/pkg/negotiation"
)

// Turn speakers.
const (
	SpeakerPlayer = "player"
	SpeakerVendor = "vendor"
)

// Turn is one message in the negotiation log.
type Turn struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NegotiationState is the permanent record of one player's haggling on
// one level. It is created lazily on the first message and mutated once
// per turn; it is never deleted.
type NegotiationState struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"user_id"`
	LevelID     string       `json:"level_id"`
	LastOffer   *money.Price `json:"last_offer,omitempty"`   // player's last offered price
	VendorOffer *money.Price `json:"vendor_offer,omitempty"` // vendor's standing counter-offer
	Completed   bool         `json:"completed"`
	Stars       *int         `json:"stars,omitempty"`
	Points      int          `json:"points"`
	Turns       []Turn       `json:"turns"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// New creates a fresh session for a player x level pair.
func New(userID, levelID string) *NegotiationState {
	now := time.Now().UTC()
	return &NegotiationState{
		ID:        uuid.New(),
		UserID:    userID,
		LevelID:   levelID,
		Turns:     make([]Turn, 0),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// VendorTurns counts the vendor messages in the log. A session with no
// vendor turns is on its greeting turn.
func (s *NegotiationState) VendorTurns() int {
	n := 0
	for _, t := range s.Turns {
		if t.Speaker == SpeakerVendor {
			n++
		}
	}
	return n
}

// AddTurn appends a message to the log.
func (s *NegotiationState) AddTurn(speaker, text string, at time.Time) {
	s.Turns = append(s.Turns, Turn{Speaker: speaker, Text: text, Timestamp: at})
	s.UpdatedAt = at
}

// Apply folds a resolved turn into the session. The whole result lands
// at once: offers, closure, and reward are never applied partially.
func (s *NegotiationState) Apply(r negotiation.TurnResult, at time.Time) {
	if r.PlayerOffer != nil {
		offer := *r.PlayerOffer
		s.LastOffer = &offer
	}
	if r.CounterOffer != nil {
		counter := *r.CounterOffer
		s.VendorOffer = &counter
	}
	if r.Closed {
		s.Completed = true
		completedAt := at
		s.CompletedAt = &completedAt
		if r.Reward != nil {
			stars := r.Reward.Stars
			s.Stars = &stars
			s.Points = r.Reward.Points
		}
	}
	s.UpdatedAt = at
}
