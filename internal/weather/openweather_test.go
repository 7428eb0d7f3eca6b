package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, srv *httptest.Server) *OpenWeatherClient {
	t.Helper()

	c := NewOpenWeatherClient(srv.Client(), "test-key", "pt_br")
	c.baseURL = srv.URL
	// Keep test retries fast.
	c.httpCfg.Backoff = BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	}
	c.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestOpenWeatherFetchParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "Recife" || q.Get("appid") != "test-key" ||
			q.Get("units") != "metric" || q.Get("lang") != "pt_br" {
			t.Errorf("unexpected query parameters: %v", q)
		}
		fmt.Fprint(w, `{
			"main": {"temp": 28.3, "feels_like": 31.0, "humidity": 82, "pressure": 1012},
			"weather": [{"description": "céu limpo"}, {"description": "ignored"}],
			"wind": {"speed": 4.2},
			"clouds": {"all": 10}
		}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	obs, err := c.Fetch(context.Background(), Location{City: "Recife"}, "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obs.City != "Recife" || obs.Temperature != 28.3 || obs.FeelsLike != 31.0 ||
		obs.Humidity != 82 || obs.Pressure != 1012 || obs.WindSpeed != 4.2 || obs.Clouds != 10 {
		t.Errorf("unexpected observation: %+v", obs)
	}
	if obs.Weather != "céu limpo" {
		t.Errorf("weather description = %q, want first entry's description", obs.Weather)
	}
	if obs.Date != "2024-03-01" {
		t.Errorf("run date = %q, want 2024-03-01", obs.Date)
	}
	if obs.Timestamp != "2024-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q, want capture time in RFC3339 UTC", obs.Timestamp)
	}
}

func TestOpenWeatherFetchNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	if _, err := c.Fetch(context.Background(), Location{City: "Natal"}, "2024-03-01"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestOpenWeatherFetchMalformedPayloadIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	if _, err := c.Fetch(context.Background(), Location{City: "Natal"}, "2024-03-01"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestOpenWeatherFetchEmptyWeatherArrayIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"main": {"temp": 20}, "weather": [], "wind": {}, "clouds": {}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	if _, err := c.Fetch(context.Background(), Location{City: "Natal"}, "2024-03-01"); err == nil {
		t.Fatal("expected error for payload without weather entries")
	}
}

func TestLocationQuery(t *testing.T) {
	if q := (Location{City: "Natal"}).Query(); q != "Natal" {
		t.Errorf("Query() = %q", q)
	}
	if q := (Location{City: "Natal", Country: "BR"}).Query(); q != "Natal,BR" {
		t.Errorf("Query() = %q", q)
	}
}
