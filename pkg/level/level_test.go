package level

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aimarket/haggle-engine/pkg/money"
)

func validLevel() *Level {
	return &Level{
		ID:                 "vintage-camera",
		Name:               "Vintage Camera",
		ProductDescription: "A rare 1960s Leica M3 camera in excellent condition.",
		VendorPersonality:  "A passionate photography enthusiast who needs quick cash.",
		InitialPrice:       money.FromCents(50000),
		TargetPrice:        money.FromCents(40000),
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Level)
		wantErr bool
	}{
		{name: "valid level", mutate: func(l *Level) {}},
		{name: "target equals initial", mutate: func(l *Level) {
			l.TargetPrice = l.InitialPrice
		}},
		{name: "missing id", mutate: func(l *Level) { l.ID = "" }, wantErr: true},
		{name: "missing name", mutate: func(l *Level) { l.Name = "" }, wantErr: true},
		{name: "missing description", mutate: func(l *Level) { l.ProductDescription = "" }, wantErr: true},
		{name: "zero initial price", mutate: func(l *Level) { l.InitialPrice = 0 }, wantErr: true},
		{name: "zero target price", mutate: func(l *Level) { l.TargetPrice = 0 }, wantErr: true},
		{name: "target above initial", mutate: func(l *Level) {
			l.TargetPrice = l.InitialPrice + 1
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLevel()
			tt.mutate(l)
			err := l.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
