package placeservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с PlaceService (каталог площадок)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PlaceService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVenue получает площадку по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid venue ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrVenueNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var venue Venue
	if err := json.NewDecoder(resp.Body).Decode(&venue); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &venue, nil
}

// GetVenueWithGracefulDegradation получает площадку с graceful degradation
// При недоступности PlaceService возвращает ErrServiceDegraded: читающие
// сценарии продолжают работать без данных площадки, пишущие - отклоняются
func (c *Client) GetVenueWithGracefulDegradation(ctx context.Context, venueID int64) (*Venue, error) {
	venue, err := c.GetVenue(ctx, venueID)
	if err != nil {
		// Отсутствие площадки - бизнес-ошибка, пробрасываем как есть
		if errors.Is(err, ErrVenueNotFound) {
			c.log.Info("Venue not found: venue_id=%d", venueID)
			return nil, err
		}

		// Недоступность сервиса, timeout, ошибки парсинга - деградация
		c.log.Error("PlaceService unavailable, applying graceful degradation for venue_id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: venue_id=%d, error=%v", ErrServiceDegraded, venueID, err)
	}

	return venue, nil
}
