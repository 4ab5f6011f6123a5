package chat

import "fmt"

// Roles for messages sent to the LLM collaborator. These follow the
// chat-completions message shape shared by the supported providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message sent to or received from the LLM.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SendMessageRequest is the body of a player turn posted to the API.
type SendMessageRequest struct {
	Message string `json:"message"`
}

func (r *SendMessageRequest) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// SendMessageResponse carries the vendor's reply for one turn, plus the
// closure facts the client needs to render the result.
type SendMessageResponse struct {
	Message      string `json:"message,omitempty"`
	Accepted     bool   `json:"accepted"`
	CounterOffer string `json:"counter_offer,omitempty"`
	Stars        *int   `json:"stars,omitempty"`
	Points       *int   `json:"points,omitempty"`
	Error        string `json:"error,omitempty"`
}
