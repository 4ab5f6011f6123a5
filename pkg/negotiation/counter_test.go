package negotiation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aimarket/haggle-engine/pkg/money"
)

// Standard test range: ask $500, floor $400.
const (
	testInitial = money.Price(50000)
	testTarget  = money.Price(40000)
)

func TestOpeningCounter_NearAsk(t *testing.T) {
	// $450 is 90% of the ask: counter at the midpoint of (target, offer).
	got := NextCounter(money.Price(45000), testInitial, testTarget, nil, nil, PersonalityDefault)
	assert.Equal(t, money.Price(42500), got)
}

func TestOpeningCounter_MiddleBand(t *testing.T) {
	// $300 is 60% of the ask: concession is a personality-sized share
	// of the full $100 range.
	offered := money.Price(30000)

	tests := []struct {
		personality Personality
		want        money.Price
	}{
		{PersonalityEager, money.Price(44000)},    // 60% concession
		{PersonalityStubborn, money.Price(48000)}, // 20% concession
		{PersonalityDefault, money.Price(46000)},  // 40% concession
		{PersonalityPatient, money.Price(46000)},  // patient is not special here
	}

	for _, tt := range tests {
		t.Run(tt.personality.String(), func(t *testing.T) {
			got := NextCounter(offered, testInitial, testTarget, nil, nil, tt.personality)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpeningCounter_Lowball(t *testing.T) {
	// $200 is 40% of the ask: only patient vendors move off the ask.
	offered := money.Price(20000)

	tests := []struct {
		personality Personality
		want        money.Price
	}{
		{PersonalityPatient, money.Price(47000)}, // 30% concession
		{PersonalityEager, testInitial},
		{PersonalityStubborn, testInitial},
		{PersonalityDefault, testInitial},
	}

	for _, tt := range tests {
		t.Run(tt.personality.String(), func(t *testing.T) {
			got := NextCounter(offered, testInitial, testTarget, nil, nil, tt.personality)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpeningCounter_OfferAtTarget(t *testing.T) {
	// $400 is 80% of a $500 ask: midpoint of (400, 400) is the target itself.
	got := NextCounter(testTarget, testInitial, testTarget, nil, nil, PersonalityStubborn)
	assert.Equal(t, testTarget, got)
}

func TestReviseCounter_BuyerImproving(t *testing.T) {
	vendorLast := money.Price(42500)
	playerLast := money.Price(41000)
	offered := money.Price(41500)

	// Midpoint of (415, 425) is 420, which is 20% into the range: no snap.
	got := NextCounter(offered, testInitial, testTarget, &vendorLast, &playerLast, PersonalityDefault)
	assert.Equal(t, money.Price(42000), got)
}

func TestReviseCounter_SnapToTarget(t *testing.T) {
	vendorLast := money.Price(41000)
	playerLast := money.Price(40000)
	offered := money.Price(40800)

	// Midpoint of (408, 410) is 409, within the closest 10% of the
	// range above target: snap straight to target.
	got := NextCounter(offered, testInitial, testTarget, &vendorLast, &playerLast, PersonalityDefault)
	assert.Equal(t, testTarget, got)
}

func TestReviseCounter_BuyerStalled(t *testing.T) {
	vendorLast := money.Price(45000)
	playerLast := money.Price(40500)
	offered := money.Price(40500) // same as last time

	tests := []struct {
		personality Personality
		want        money.Price
	}{
		{PersonalityEager, money.Price(44000)},    // 20% of the $50 gap
		{PersonalityStubborn, money.Price(44750)}, // 5%
		{PersonalityDefault, money.Price(44500)},  // 10%
		{PersonalityPatient, money.Price(44500)},  // falls to default
	}

	for _, tt := range tests {
		t.Run(tt.personality.String(), func(t *testing.T) {
			got := NextCounter(offered, testInitial, testTarget, &vendorLast, &playerLast, tt.personality)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReviseCounter_BuyerRegressed(t *testing.T) {
	vendorLast := money.Price(45000)
	playerLast := money.Price(42000)
	offered := money.Price(41000) // going backwards

	// Treated the same as stalling.
	got := NextCounter(offered, testInitial, testTarget, &vendorLast, &playerLast, PersonalityDefault)
	assert.Equal(t, money.Price(44500), got)
}

// The floor invariant: no branch may ever counter below target.
func TestNextCounter_NeverBelowTarget(t *testing.T) {
	personalities := []Personality{
		PersonalityDefault, PersonalityEager, PersonalityStubborn, PersonalityPatient,
	}
	vendorOffers := []*money.Price{nil, price(50000), price(45000), price(40100), price(40000)}
	playerOffers := []*money.Price{nil, price(100), price(30000), price(40000), price(49900)}

	for _, p := range personalities {
		for _, vl := range vendorOffers {
			for _, pl := range playerOffers {
				for offered := int64(0); offered <= 55000; offered += 2500 {
					got := NextCounter(money.FromCents(offered), testInitial, testTarget, vl, pl, p)
					label := fmt.Sprintf("personality=%s offered=%d", p, offered)
					assert.GreaterOrEqual(t, got, testTarget, label)
				}
			}
		}
	}
}
