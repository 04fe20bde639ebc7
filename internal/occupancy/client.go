package occupancy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/model"
)

// Адреса сервиса занятости аудиторий
const (
	// DefaultOccupancyURL страница занятости на конкретную дату
	DefaultOccupancyURL = "https://onlineservices.polimi.it/spazi/spazi/controller/OccupazioniGiornoEsatto.do"
	// DefaultBaseURL префикс для относительных ссылок на аудитории
	DefaultBaseURL = "https://onlineservices.polimi.it/spazi/spazi/controller/"
)

// Без браузерного User-Agent сервис отдаёт пустую страницу
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client загружает страницу занятости и превращает её в расписание.
// Один GET запрос на вызов, без повторов: повторная попытка
// остаётся на усмотрение вызывающего.
type Client struct {
	httpClient *http.Client
	url        string
	extractor  *Extractor
	logger     *zap.Logger
}

// NewClient создаёт клиент источника занятости
func NewClient(httpClient *http.Client, occupancyURL string, extractor *Extractor, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if occupancyURL == "" {
		occupancyURL = DefaultOccupancyURL
	}
	return &Client{
		httpClient: httpClient,
		url:        occupancyURL,
		extractor:  extractor,
		logger:     logger,
	}
}

// FetchDay загружает и разбирает занятость для кампуса на дату.
// Сетевые ошибки и не-200 статусы возвращаются как *TransportError.
func (c *Client) FetchDay(ctx context.Context, location string, day, month, year int) (model.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build occupancy request: %w", err)
	}

	query := url.Values{}
	query.Set("csic", location)
	query.Set("categoria", "tutte")
	query.Set("tipologia", "tutte")
	query.Set("giorno_day", strconv.Itoa(day))
	query.Set("giorno_month", strconv.Itoa(month))
	query.Set("giorno_year", strconv.Itoa(year))
	query.Set("jaf_giorno_date_format", "dd/MM/yyyy")
	query.Set("evn_visualizza", "")
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Info("Occupancy page fetched",
		zap.String("location", location),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	schedule, err := c.extractor.Extract(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract schedule for %s: %w", location, err)
	}

	return schedule, nil
}
