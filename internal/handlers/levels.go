package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aimarket/haggle-engine/internal/middleware"
	"github.com/aimarket/haggle-engine/internal/services"
	"github.com/aimarket/haggle-engine/internal/storage"
	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/money"
)

// GameHandler serves the level catalog and the negotiation endpoints
// under /v1/levels.
type GameHandler struct {
	storage    storage.Storage
	users      storage.UserStore
	llmService services.LLMService
	logger     *slog.Logger
}

func NewGameHandler(s storage.Storage, users storage.UserStore, llmService services.LLMService, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		storage:    s,
		users:      users,
		llmService: llmService,
		logger:     logger,
	}
}

// LevelView is the client-facing shape of a level. The vendor's target
// price stays server-side; revealing the floor would end the haggling.
type LevelView struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	ProductDescription string      `json:"product_description"`
	VendorPersonality  string      `json:"vendor_personality"`
	InitialPrice       money.Price `json:"initial_price"`
	RequiredPoints     int         `json:"required_points"`
}

func newLevelView(l *level.Level) LevelView {
	return LevelView{
		ID:                 l.ID,
		Name:               l.Name,
		ProductDescription: l.ProductDescription,
		VendorPersonality:  l.VendorPersonality,
		InitialPrice:       l.InitialPrice,
		RequiredPoints:     l.RequiredPoints,
	}
}

// LevelSummary is a catalog entry merged with the caller's progress.
type LevelSummary struct {
	LevelView
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
	Stars     *int `json:"stars,omitempty"`
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/levels"), "/")

	if rest == "" {
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
			return
		}
		h.handleList(w, r)
		return
	}

	parts := strings.Split(rest, "/")
	levelID := parts[0]
	if strings.Contains(levelID, "..") {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid level id.")
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
			return
		}
		h.handleGet(w, r, levelID)
	case len(parts) == 2 && parts[1] == "messages":
		switch r.Method {
		case http.MethodPost:
			h.handleSendMessage(w, r, levelID)
		case http.MethodGet:
			h.handleHistory(w, r, levelID)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
		}
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found.")
	}
}

func (h *GameHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	levels, err := h.storage.ListLevels(ctx)
	if err != nil {
		h.logger.Error("Failed to list levels", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list levels.")
		return
	}

	u, err := h.users.GetUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load user", "user_id", userID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list levels.")
		return
	}
	totalPoints := 0
	if u != nil {
		totalPoints = u.TotalPoints
	}

	summaries := make([]LevelSummary, 0, len(levels))
	for _, l := range levels {
		summary := LevelSummary{
			LevelView: newLevelView(l),
			Unlocked:  totalPoints >= l.RequiredPoints,
		}

		sess, err := h.storage.LoadSession(ctx, userID, l.ID)
		if err != nil {
			h.logger.Error("Failed to load session", "user_id", userID, "level_id", l.ID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list levels.")
			return
		}
		if sess != nil && sess.Completed {
			summary.Completed = true
			summary.Stars = sess.Stars
		}

		summaries = append(summaries, summary)
	}

	writeJSON(w, h.logger, http.StatusOK, summaries)
}

func (h *GameHandler) handleGet(w http.ResponseWriter, r *http.Request, levelID string) {
	ctx := r.Context()

	l, err := h.storage.GetLevel(ctx, levelID)
	if err != nil {
		h.logger.Error("Failed to get level", "level_id", levelID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve level.")
		return
	}
	if l == nil {
		writeError(w, h.logger, http.StatusNotFound, "Level not found.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, newLevelView(l))
}
