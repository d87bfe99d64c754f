package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
)

// Provider fetches current conditions for a coordinate.
type Provider interface {
	Current(ctx context.Context, lat, lng float64) (domain.WeatherObservation, error)
}

const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

type OpenMeteo struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteo returns a client with a single per-request timeout and no retries.
func NewOpenMeteo(baseURL string, timeout time.Duration) *OpenMeteo {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type openMeteoResponse struct {
	Current struct {
		Precipitation            *float64 `json:"precipitation"`
		PrecipitationProbability *float64 `json:"precipitation_probability"`
		WindSpeed10m             *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (o *OpenMeteo) Current(ctx context.Context, lat, lng float64) (domain.WeatherObservation, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current", "precipitation,precipitation_probability,wind_speed_10m")
	q.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("build weather request: %w", err)
	}

	logger.ExternalServiceCall(ctx, "open-meteo", "current", "lat", lat, "lng", lng)
	obs, err := o.do(req)
	logger.ExternalServiceResult(ctx, "open-meteo", "current", err)
	return obs, err
}

func (o *OpenMeteo) do(req *http.Request) (domain.WeatherObservation, error) {
	resp, err := o.client.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: unexpected status %d", resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("decode weather response: %w", err)
	}

	return domain.WeatherObservation{
		PrecipProb: orZero(body.Current.PrecipitationProbability),
		PrecipMM:   orZero(body.Current.Precipitation),
		WindKMH:    orZero(body.Current.WindSpeed10m),
	}, nil
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
