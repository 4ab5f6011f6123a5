package level

import (
	"fmt"

	"github.com/aimarket/haggle-engine/pkg/money"
)

// Level is a configured negotiation scenario: one product, one vendor,
// and the price range the haggling plays out in.
type Level struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	ProductDescription string      `json:"product_description"`
	VendorPersonality  string      `json:"vendor_personality"`
	InitialPrice       money.Price `json:"initial_price"` // vendor's opening ask
	TargetPrice        money.Price `json:"target_price"`  // vendor's true floor
	RequiredPoints     int         `json:"required_points"`
}

// Validate checks the level invariants. Target price may never exceed
// the initial price.
func (l *Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("level id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("level name is required")
	}
	if l.ProductDescription == "" {
		return fmt.Errorf("level product description is required")
	}
	if l.InitialPrice <= 0 {
		return fmt.Errorf("level initial price must be positive")
	}
	if l.TargetPrice <= 0 {
		return fmt.Errorf("level target price must be positive")
	}
	if l.TargetPrice > l.InitialPrice {
		return fmt.Errorf("level target price %s exceeds initial price %s",
			l.TargetPrice.Display(), l.InitialPrice.Display())
	}
	return nil
}
