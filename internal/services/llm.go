package services

import (
	"context"

	"github.com/aimarket/haggle-engine/pkg/chat"
)

// LLMService defines the interface for the language-model collaborator
// that phrases vendor replies. The engine decides the facts; the
// collaborator only puts them into words.
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateResponse generates the vendor's reply text from the
	// composed brief messages
	GenerateResponse(ctx context.Context, messages []chat.Message) (string, error)
}
