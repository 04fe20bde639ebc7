package occupancy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/staticdata"
)

func TestClientFetchDay(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"csic":         r.URL.Query().Get("csic"),
			"giorno_day":   r.URL.Query().Get("giorno_day"),
			"giorno_month": r.URL.Query().Get("giorno_month"),
			"giorno_year":  r.URL.Query().Get("giorno_year"),
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	extractor := NewExtractor(staticdata.NewPowerIndex(nil), staticdata.GarbageRooms, "base/", zap.NewNop())
	client := NewClient(server.Client(), server.URL, extractor, zap.NewNop())

	schedule, err := client.FetchDay(context.Background(), "MIA", 25, 10, 2021)
	require.NoError(t, err)

	assert.Equal(t, "MIA", gotQuery["csic"])
	assert.Equal(t, "25", gotQuery["giorno_day"])
	assert.Equal(t, "10", gotQuery["giorno_month"])
	assert.Equal(t, "2021", gotQuery["giorno_year"])
	assert.Contains(t, schedule, "Edificio 26")
}

func TestClientFetchDayServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	extractor := NewExtractor(staticdata.NewPowerIndex(nil), nil, "base/", zap.NewNop())
	client := NewClient(server.Client(), server.URL, extractor, zap.NewNop())

	_, err := client.FetchDay(context.Background(), "MIA", 25, 10, 2021)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
}

func TestClientFetchDayBadLayout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nuovo layout</body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(staticdata.NewPowerIndex(nil), nil, "base/", zap.NewNop())
	client := NewClient(server.Client(), server.URL, extractor, zap.NewNop())

	_, err := client.FetchDay(context.Background(), "MIA", 25, 10, 2021)
	assert.ErrorIs(t, err, ErrSourceFormat)
}
