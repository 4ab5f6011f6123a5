package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aimarket/haggle-engine/internal/middleware"
	"github.com/aimarket/haggle-engine/pkg/chat"
	"github.com/aimarket/haggle-engine/pkg/negotiation"
	"github.com/aimarket/haggle-engine/pkg/prompts"
	"github.com/aimarket/haggle-engine/pkg/session"
)

// llmTimeout bounds one collaborator call. On timeout the turn falls
// back to the deterministic vendor line; the resolved outcome is never
// lost to a slow model.
const llmTimeout = 30 * time.Second

// HistoryResponse is the full turn log of one session.
type HistoryResponse struct {
	Completed bool           `json:"completed"`
	Stars     *int           `json:"stars,omitempty"`
	Points    int            `json:"points"`
	Turns     []session.Turn `json:"turns"`
}

func (h *GameHandler) handleSendMessage(w http.ResponseWriter, r *http.Request, levelID string) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	lvl, err := h.storage.GetLevel(ctx, levelID)
	if err != nil {
		h.logger.Error("Failed to get level", "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve level.")
		return
	}
	if lvl == nil {
		writeError(w, h.logger, http.StatusNotFound, "Level not found.")
		return
	}

	u, err := h.users.GetUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load user", "user_id", userID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to process message.")
		return
	}
	if u == nil {
		writeError(w, h.logger, http.StatusUnauthorized, "Unknown user.")
		return
	}
	if u.TotalPoints < lvl.RequiredPoints {
		writeError(w, h.logger, http.StatusForbidden, "Level is locked. Earn more points first.")
		return
	}

	var req chat.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid message request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'message' field.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.storage.LoadSession(ctx, userID, levelID)
	if err != nil {
		h.logger.Error("Failed to load session", "user_id", userID, "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to process message.")
		return
	}
	if sess == nil {
		sess = session.New(userID, levelID)
	}
	if sess.Completed {
		writeError(w, h.logger, http.StatusConflict, "This negotiation is already closed.")
		return
	}

	firstTurn := sess.VendorTurns() == 0
	result := negotiation.Resolve(lvl, req.Message, sess.LastOffer, sess.VendorOffer, firstTurn)
	brief := prompts.Compose(lvl, sess.Turns, req.Message, result)

	reply := h.generateReply(ctx, brief)
	if result.Closed {
		reply = prompts.EnsureClosingMarker(reply)
	}

	now := time.Now().UTC()
	sess.AddTurn(session.SpeakerPlayer, req.Message, now)
	sess.AddTurn(session.SpeakerVendor, reply, now)
	sess.Apply(result, now)

	if err := h.storage.SaveSession(ctx, sess); err != nil {
		h.logger.Error("Failed to save session", "user_id", userID, "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session.")
		return
	}

	if result.Closed && result.Reward != nil && result.Reward.Points > 0 {
		// Points feed level unlocks. A failed credit shouldn't void a
		// closed deal, so log and move on.
		if err := h.users.AddPoints(ctx, userID, result.Reward.Points); err != nil {
			h.logger.Error("Failed to credit points", "user_id", userID, "points", result.Reward.Points, "error", err)
		}
	}

	h.logger.Info("Turn resolved",
		"user_id", userID,
		"level_id", levelID,
		"outcome", result.Outcome.String(),
		"closed", result.Closed)

	resp := chat.SendMessageResponse{
		Message:  reply,
		Accepted: result.Closed,
	}
	if result.CounterOffer != nil {
		resp.CounterOffer = result.CounterOffer.String()
	}
	if result.Closed && result.Reward != nil {
		stars := result.Reward.Stars
		points := result.Reward.Points
		resp.Stars = &stars
		resp.Points = &points
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// generateReply asks the LLM collaborator to phrase the vendor's reply.
// The deterministic fallback line carries the same facts, so an outage
// degrades the prose, not the negotiation.
func (h *GameHandler) generateReply(ctx context.Context, brief prompts.Brief) string {
	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	reply, err := h.llmService.GenerateResponse(llmCtx, brief.Messages())
	if err != nil {
		h.logger.Warn("LLM generation failed, using fallback reply",
			"branch", brief.Branch.String(),
			"error", err)
		return brief.Fallback()
	}
	return reply
}

func (h *GameHandler) handleHistory(w http.ResponseWriter, r *http.Request, levelID string) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	lvl, err := h.storage.GetLevel(ctx, levelID)
	if err != nil {
		h.logger.Error("Failed to get level", "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve level.")
		return
	}
	if lvl == nil {
		writeError(w, h.logger, http.StatusNotFound, "Level not found.")
		return
	}

	sess, err := h.storage.LoadSession(ctx, userID, levelID)
	if err != nil {
		h.logger.Error("Failed to load session", "user_id", userID, "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load history.")
		return
	}

	resp := HistoryResponse{Turns: make([]session.Turn, 0)}
	if sess != nil {
		resp.Completed = sess.Completed
		resp.Stars = sess.Stars
		resp.Points = sess.Points
		resp.Turns = sess.Turns
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
