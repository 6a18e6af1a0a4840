// Package notifier HTTP клиент сервиса уведомлений.
// Доставка (email-приглашения агентам, SMS клиентам) реализована снаружи;
// ядро лишь сообщает о событиях и никогда не блокирует бронирование
// из-за недоступности уведомлений.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingConfirmed уведомляет о новом бронировании:
// приглашение агенту на email и SMS-подтверждение клиенту
func (c *Client) BookingConfirmed(ctx context.Context, n *Notification) error {
	return c.post(ctx, "/internal/notifications/booking-confirmed", n)
}

// BookingCancelled уведомляет агента об отмене бронирования
func (c *Client) BookingCancelled(ctx context.Context, n *Notification) error {
	return c.post(ctx, "/internal/notifications/booking-cancelled", n)
}

// CancelAcknowledged подтверждает клиенту отмену его бронирования
func (c *Client) CancelAcknowledged(ctx context.Context, n *Notification) error {
	return c.post(ctx, "/internal/notifications/cancel-acknowledged", n)
}

// Reminder отправляет клиенту напоминание о завтрашнем слоте
func (c *Client) Reminder(ctx context.Context, n *Notification) error {
	return c.post(ctx, "/internal/notifications/reminder", n)
}

func (c *Client) post(ctx context.Context, path string, n *Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
