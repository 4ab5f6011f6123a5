package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPersonality(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Personality
	}{
		{
			name: "eager keyword",
			text: "A gamer who knows the market value but is eager to sell.",
			want: PersonalityEager,
		},
		{
			name: "need keyword",
			text: "A musician who loves this guitar but needs money for new equipment.",
			want: PersonalityEager,
		},
		{name: "desperate keyword", text: "Desperate to clear out the garage", want: PersonalityEager},
		{name: "stubborn keyword", text: "A stubborn old collector", want: PersonalityStubborn},
		{name: "firm keyword", text: "Stands firm on pricing", want: PersonalityStubborn},
		{name: "confident keyword", text: "Confident about the value", want: PersonalityStubborn},
		{name: "patient keyword", text: "A patient dealer who enjoys a chat", want: PersonalityPatient},
		{name: "kind keyword", text: "A kind retiree", want: PersonalityPatient},
		{name: "helpful keyword", text: "Helpful and chatty", want: PersonalityPatient},
		{name: "case insensitive", text: "STUBBORN TO A FAULT", want: PersonalityStubborn},
		{
			name: "eager wins over stubborn",
			text: "A confident seller who desperately needs cash",
			want: PersonalityEager,
		},
		{
			name: "stubborn wins over patient",
			text: "A kind but firm negotiator",
			want: PersonalityStubborn,
		},
		{name: "no keywords", text: "Just a regular person selling stuff", want: PersonalityDefault},
		{name: "empty text", text: "", want: PersonalityDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPersonality(tt.text))
		})
	}
}

func TestPersonalityString(t *testing.T) {
	assert.Equal(t, "eager", PersonalityEager.String())
	assert.Equal(t, "stubborn", PersonalityStubborn.String())
	assert.Equal(t, "patient", PersonalityPatient.String())
	assert.Equal(t, "default", PersonalityDefault.String())
}
