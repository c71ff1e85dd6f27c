// Package gameservice cancels games linked to court reservations.
package gameservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenHeader заголовок с сервисным токеном
const TokenHeader = "X-Service-Token"

// Client клиент для работы с сервисом игр
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса игр
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CancelForReservation отменяет игры, привязанные к бронированию.
// Идемпотентно: отсутствие игры (404) считается успехом.
func (c *Client) CancelForReservation(ctx context.Context, reservationID int64, reason string) error {
	url := fmt.Sprintf("%s/internal/reservations/%d/games/cancel", c.baseURL, reservationID)

	body, err := json.Marshal(CancelRequest{Reason: reason})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		// Продолжаем обработку
	case http.StatusNotFound:
		c.log.Info("GameService: no game linked to reservation id=%d", reservationID)
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var result CancelResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("GameService: cancelled %d game(s) for reservation id=%d (%s)", result.CancelledGames, reservationID, reason)
	return nil
}

// Disabled используется, когда интеграция выключена в конфигурации
type Disabled struct{}

// CancelForReservation ничего не делает
func (Disabled) CancelForReservation(context.Context, int64, string) error {
	return nil
}
