package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimarket/haggle-engine/pkg/money"
	"github.com/aimarket/haggle-engine/pkg/negotiation"
)

func TestNew(t *testing.T) {
	s := New("user-1", "vintage-camera")

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", s.ID.String())
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "vintage-camera", s.LevelID)
	assert.False(t, s.Completed)
	assert.Nil(t, s.LastOffer)
	assert.Nil(t, s.VendorOffer)
	assert.Empty(t, s.Turns)
}

func TestVendorTurns(t *testing.T) {
	s := New("user-1", "vintage-camera")
	now := time.Now()

	assert.Equal(t, 0, s.VendorTurns())

	s.AddTurn(SpeakerPlayer, "hello", now)
	assert.Equal(t, 0, s.VendorTurns())

	s.AddTurn(SpeakerVendor, "welcome!", now)
	s.AddTurn(SpeakerPlayer, "how about $450?", now)
	s.AddTurn(SpeakerVendor, "I could do $425.", now)
	assert.Equal(t, 2, s.VendorTurns())
}

func TestApply_CounterTurn(t *testing.T) {
	s := New("user-1", "vintage-camera")
	now := time.Now()

	offer := money.Price(45000)
	counter := money.Price(42500)
	s.Apply(negotiation.TurnResult{
		Outcome:      negotiation.OutcomeCounter,
		PlayerOffer:  &offer,
		CounterOffer: &counter,
	}, now)

	require.NotNil(t, s.LastOffer)
	assert.Equal(t, offer, *s.LastOffer)
	require.NotNil(t, s.VendorOffer)
	assert.Equal(t, counter, *s.VendorOffer)
	assert.False(t, s.Completed)
	assert.Nil(t, s.Stars)
}

func TestApply_ClosingTurn(t *testing.T) {
	s := New("user-1", "vintage-camera")
	now := time.Now()

	closing := money.Price(42500)
	s.Apply(negotiation.TurnResult{
		Outcome:      negotiation.OutcomeAccepted,
		Accepted:     true,
		Closed:       true,
		ClosingPrice: &closing,
		Reward:       &negotiation.Reward{Stars: 2, Points: 20},
	}, now)

	assert.True(t, s.Completed)
	require.NotNil(t, s.Stars)
	assert.Equal(t, 2, *s.Stars)
	assert.Equal(t, 20, s.Points)
	require.NotNil(t, s.CompletedAt)
	assert.Equal(t, now, *s.CompletedAt)
}

func TestApply_ChatTurnChangesNothing(t *testing.T) {
	s := New("user-1", "vintage-camera")
	offer := money.Price(45000)
	s.LastOffer = &offer

	s.Apply(negotiation.TurnResult{Outcome: negotiation.OutcomeChat}, time.Now())

	require.NotNil(t, s.LastOffer)
	assert.Equal(t, offer, *s.LastOffer)
	assert.Nil(t, s.VendorOffer)
	assert.False(t, s.Completed)
}
