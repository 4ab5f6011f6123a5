package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimarket/haggle-engine/internal/middleware"
	"github.com/aimarket/haggle-engine/internal/services"
	"github.com/aimarket/haggle-engine/internal/storage"
	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/money"
	"github.com/aimarket/haggle-engine/pkg/session"
	"github.com/aimarket/haggle-engine/pkg/user"
)

type gameFixture struct {
	handler *GameHandler
	storage *storage.MockStorage
	users   *storage.MockUserStore
	llm     *services.MockLLM
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()

	mockStorage := storage.NewMockStorage()
	mockStorage.AddLevel(&level.Level{
		ID:                 "vintage-camera",
		Name:               "Vintage Camera",
		ProductDescription: "A 1960s rangefinder camera in working condition.",
		VendorPersonality:  "A stubborn collector who knows what his items are worth.",
		InitialPrice:       money.FromCents(50000),
		TargetPrice:        money.FromCents(40000),
	})
	mockStorage.AddLevel(&level.Level{
		ID:                 "vintage-guitar",
		Name:               "Vintage Guitar",
		ProductDescription: "A 1970s electric guitar with original pickups.",
		VendorPersonality:  "A patient dealer who enjoys the conversation.",
		InitialPrice:       money.FromCents(100000),
		TargetPrice:        money.FromCents(80000),
		RequiredPoints:     30,
	})

	mockUsers := storage.NewMockUserStore()
	require.NoError(t, mockUsers.CreateUser(context.Background(), &user.User{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
	}))

	mockLLM := services.NewMockLLM()

	return &gameFixture{
		handler: NewGameHandler(mockStorage, mockUsers, mockLLM, testLogger()),
		storage: mockStorage,
		users:   mockUsers,
		llm:     mockLLM,
	}
}

func (f *gameFixture) do(method, path, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

// seedSession installs a session that is past its greeting turn.
func seedSession(t *testing.T, f *gameFixture, vendorOffer *money.Price) *session.NegotiationState {
	t.Helper()
	sess := session.New("u1", "vintage-camera")
	now := time.Now().UTC()
	sess.AddTurn(session.SpeakerPlayer, "Hello!", now)
	sess.AddTurn(session.SpeakerVendor, "Welcome, take a look at this camera.", now)
	sess.VendorOffer = vendorOffer
	require.NoError(t, f.storage.SaveSession(context.Background(), sess))
	return sess
}

func TestGameHandler_ListLevels(t *testing.T) {
	f := newGameFixture(t)

	w := f.do(http.MethodGet, "/v1/levels", "", "u1")
	require.Equal(t, http.StatusOK, w.Code)

	var levels []LevelSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&levels))
	require.Len(t, levels, 2)

	assert.Equal(t, "vintage-camera", levels[0].ID)
	assert.True(t, levels[0].Unlocked)
	assert.False(t, levels[0].Completed)

	// 30 points required, the user has 0.
	assert.Equal(t, "vintage-guitar", levels[1].ID)
	assert.False(t, levels[1].Unlocked)
}

func TestGameHandler_ListLevels_MergesProgress(t *testing.T) {
	f := newGameFixture(t)

	sess := seedSession(t, f, nil)
	stars := 2
	sess.Completed = true
	sess.Stars = &stars
	sess.Points = 20
	require.NoError(t, f.storage.SaveSession(context.Background(), sess))
	require.NoError(t, f.users.AddPoints(context.Background(), "u1", 20))

	w := f.do(http.MethodGet, "/v1/levels", "", "u1")
	require.Equal(t, http.StatusOK, w.Code)

	var levels []LevelSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&levels))
	require.Len(t, levels, 2)

	assert.True(t, levels[0].Completed)
	require.NotNil(t, levels[0].Stars)
	assert.Equal(t, 2, *levels[0].Stars)
}

func TestGameHandler_GetLevel(t *testing.T) {
	f := newGameFixture(t)

	w := f.do(http.MethodGet, "/v1/levels/vintage-camera", "", "u1")
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	assert.Equal(t, "vintage-camera", raw["id"])
	assert.Contains(t, raw, "initial_price")

	// The vendor's floor must never reach the client.
	assert.NotContains(t, raw, "target_price")
}

func TestGameHandler_GetLevel_NotFound(t *testing.T) {
	f := newGameFixture(t)

	w := f.do(http.MethodGet, "/v1/levels/no-such-level", "", "u1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameHandler_MethodNotAllowed(t *testing.T) {
	f := newGameFixture(t)

	w := f.do(http.MethodDelete, "/v1/levels/vintage-camera", "", "u1")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
