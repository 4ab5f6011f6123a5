package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aimarket/haggle-engine/pkg/chat"
	"github.com/aimarket/haggle-engine/pkg/user"
)

// LevelSummary mirrors the API's catalog entry.
type LevelSummary struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ProductDescription string  `json:"product_description"`
	VendorPersonality  string  `json:"vendor_personality"`
	InitialPrice       float64 `json:"initial_price"`
	RequiredPoints     int     `json:"required_points"`
	Unlocked           bool    `json:"unlocked"`
	Completed          bool    `json:"completed"`
	Stars              *int    `json:"stars,omitempty"`
}

// HistoryTurn mirrors one turn of the API's session history.
type HistoryTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// History mirrors the API's session history response.
type History struct {
	Completed bool          `json:"completed"`
	Stars     *int          `json:"stars,omitempty"`
	Points    int           `json:"points"`
	Turns     []HistoryTurn `json:"turns"`
}

// apiClient is a thin authenticated client for the haggle API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *apiClient) testConnection() bool {
	resp, err := c.http.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// do sends one JSON request with the bearer token attached and decodes
// the response into out.
func (c *apiClient) do(method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *apiClient) login(email, password string) error {
	var resp user.LoginResponse
	err := c.do(http.MethodPost, "/v1/auth/login", user.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *apiClient) register(username, email, password string) error {
	var resp user.LoginResponse
	err := c.do(http.MethodPost, "/v1/auth/register", user.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *apiClient) listLevels() ([]LevelSummary, error) {
	var levels []LevelSummary
	if err := c.do(http.MethodGet, "/v1/levels", nil, &levels); err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

func (c *apiClient) getHistory(levelID string) (*History, error) {
	var h History
	if err := c.do(http.MethodGet, "/v1/levels/"+levelID+"/messages", nil, &h); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return &h, nil
}

func (c *apiClient) sendMessage(levelID, message string) (*chat.SendMessageResponse, error) {
	var resp chat.SendMessageResponse
	err := c.do(http.MethodPost, "/v1/levels/"+levelID+"/messages", chat.SendMessageRequest{
		Message: message,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
