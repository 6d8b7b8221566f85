package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// ErrLocationNotFound means the upstream could not resolve the location.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUpstream covers network and provider failures.
	ErrUpstream = errors.New("weather provider unavailable")
)

// Service fetches weather data for a free-text location. Implementations
// must not retry a failed request; callers surface the failure to the user.
type Service interface {
	FetchCurrent(ctx context.Context, location string) (*models.CurrentWeather, error)
	FetchForecast(ctx context.Context, location string, days int) (*models.Forecast, error)
}

// Client talks to weatherapi.com.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewClient creates a weatherapi.com client with a bounded request timeout
// and a circuit breaker in front of the upstream.
func NewClient(cfg *config.WeatherConfig, logger *logrus.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		circuit: cb,
		logger:  logger,
	}
}

func (c *Client) FetchCurrent(ctx context.Context, location string) (*models.CurrentWeather, error) {
	var payload currentResponse
	if err := c.getJSON(ctx, "/current.json", url.Values{"q": []string{location}}, &payload); err != nil {
		return nil, err
	}

	cw := payload.normalize()
	return &cw, nil
}

func (c *Client) FetchForecast(ctx context.Context, location string, days int) (*models.Forecast, error) {
	params := url.Values{
		"q":    []string{location},
		"days": []string{fmt.Sprintf("%d", days)},
	}

	var payload forecastResponse
	if err := c.getJSON(ctx, "/forecast.json", params, &payload); err != nil {
		return nil, err
	}
	return payload.normalize(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, doErr)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", ErrUpstream)
		}
		return err
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		// weatherapi answers 400 with error code 1006 for unknown locations.
		return ErrLocationNotFound
	default:
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"path":   path,
		}).Error("Unexpected weather provider response")
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	return nil
}

// Wire shapes for the subset of weatherapi.com fields the bot consumes.

type locationPayload struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type currentPayload struct {
	TempC     float64 `json:"temp_c"`
	TempF     float64 `json:"temp_f"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
}

type currentResponse struct {
	Location locationPayload `json:"location"`
	Current  currentPayload  `json:"current"`
}

func (r currentResponse) normalize() models.CurrentWeather {
	return models.CurrentWeather{
		LocationName: r.Location.Name,
		Country:      r.Location.Country,
		TempC:        r.Current.TempC,
		TempF:        r.Current.TempF,
		Condition:    r.Current.Condition.Text,
		Humidity:     r.Current.Humidity,
		WindKph:      r.Current.WindKph,
	}
}

type forecastDayPayload struct {
	Date string `json:"date"`
	Day  struct {
		MaxTempC  float64 `json:"maxtemp_c"`
		MaxTempF  float64 `json:"maxtemp_f"`
		MinTempC  float64 `json:"mintemp_c"`
		MinTempF  float64 `json:"mintemp_f"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		DailyChanceOfRain int `json:"daily_chance_of_rain"`
	} `json:"day"`
}

type forecastResponse struct {
	Location locationPayload `json:"location"`
	Current  currentPayload  `json:"current"`
	Forecast struct {
		ForecastDay []forecastDayPayload `json:"forecastday"`
	} `json:"forecast"`
}

func (r forecastResponse) normalize() *models.Forecast {
	f := &models.Forecast{
		LocationName: r.Location.Name,
		Country:      r.Location.Country,
		Current: models.CurrentWeather{
			LocationName: r.Location.Name,
			Country:      r.Location.Country,
			TempC:        r.Current.TempC,
			TempF:        r.Current.TempF,
			Condition:    r.Current.Condition.Text,
			Humidity:     r.Current.Humidity,
			WindKph:      r.Current.WindKph,
		},
	}
	for _, day := range r.Forecast.ForecastDay {
		f.Days = append(f.Days, models.ForecastDay{
			Date:       day.Date,
			MaxTempC:   day.Day.MaxTempC,
			MaxTempF:   day.Day.MaxTempF,
			MinTempC:   day.Day.MinTempC,
			MinTempF:   day.Day.MinTempF,
			Condition:  day.Day.Condition.Text,
			RainChance: day.Day.DailyChanceOfRain,
		})
	}
	return f
}
