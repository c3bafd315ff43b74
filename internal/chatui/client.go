package chatui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"chatrelay-backend/internal/models"
)

// RelayClient sends one chat turn to the relay server.
type RelayClient interface {
	Chat(ctx context.Context, messages []models.ChatMessage, temperature float64) (*models.ChatResponse, error)
}

// WeatherClient fetches the widget's current conditions.
type WeatherClient interface {
	Current(ctx context.Context, lat, lon float64) (*models.WeatherReport, error)
}

// HTTPClient talks to a running relay server. It implements both
// RelayClient and WeatherClient.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatPayload struct {
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

func (c *HTTPClient) Chat(ctx context.Context, messages []models.ChatMessage, temperature float64) (*models.ChatResponse, error) {
	body, err := json.Marshal(chatPayload{Messages: messages, Temperature: temperature})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return nil, errors.New(errResp.Error)
		}
		return nil, errors.New("Unknown error from the server.")
	}

	var chatResp models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, errors.New("Malformed response from the server.")
	}
	return &chatResp, nil
}

func (c *HTTPClient) Current(ctx context.Context, lat, lon float64) (*models.WeatherReport, error) {
	url := fmt.Sprintf("%s/api/weather?lat=%s&lon=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("weather request failed")
	}

	var report models.WeatherReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
