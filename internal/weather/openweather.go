package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// OpenWeatherClient fetches current conditions from the OpenWeatherMap API.
type OpenWeatherClient struct {
	apiKey  string
	lang    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewOpenWeatherClient creates a client for the current-weather endpoint.
// lang selects the locale of the textual weather description (e.g. "pt_br").
func NewOpenWeatherClient(client *http.Client, apiKey, lang string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		apiKey:  apiKey,
		lang:    lang,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		now:     time.Now,
	}
}

// Fetch requests current conditions for loc and returns a RawObservation
// stamped with the capture time and the given run date. Any network error,
// non-2xx status or payload shape deviation is returned as an error; callers
// decide whether that failure is fatal.
func (c *OpenWeatherClient) Fetch(ctx context.Context, loc Location, runDate string) (RawObservation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", loc.Query())
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		if c.lang != "" {
			values.Set("lang", c.lang)
		}

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return RawObservation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All int32 `json:"all"`
		} `json:"clouds"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return RawObservation{}, fmt.Errorf("decode response for %s: %w", loc.Query(), err)
	}

	if len(payload.Weather) == 0 {
		return RawObservation{}, fmt.Errorf("response for %s has no weather entries", loc.Query())
	}

	return RawObservation{
		City:        loc.City,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		Weather:     payload.Weather[0].Description,
		WindSpeed:   payload.Wind.Speed,
		Clouds:      payload.Clouds.All,
		Timestamp:   c.now().UTC().Format(time.RFC3339),
		Date:        runDate,
	}, nil
}
