package distance

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/httpx"
	"campus-route-finder/internal/platform/obs"
	"campus-route-finder/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

const (
	metersToMiles   = 0.000621371
	secondsToMinute = 1.0 / 60
)

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleDistanceProvider implements DistanceProvider using the Google
// Distance Matrix API in walking mode.
//
// Distances are converted from meters to miles and durations from seconds to
// minutes, both rounded to two decimals. Every failure wraps domain.ErrProvider.
type GoogleDistanceProvider struct {
	http    *httpx.Retrier
	apiKey  string
	baseURL string
	mode    string
}

func NewGoogleDistanceProvider(apiKey, baseURL string) (*GoogleDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	return &GoogleDistanceProvider{
		http:    httpx.NewRetrier(10 * time.Second),
		apiKey:  apiKey,
		baseURL: baseURL,
		mode:    "walking",
	}, nil
}

func (g *GoogleDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "google.GetDistance")(&err)

	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	resp, err := g.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("origins", origin.Key())
		q.Set("destinations", destination.Key())
		q.Set("mode", g.mode)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("%w: distance matrix request: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("%w: decode distance matrix response: %w", domain.ErrProvider, err)
	}

	if mr.Status != "OK" {
		return ports.DistanceResult{}, fmt.Errorf("%w: distance matrix status %s: %s", domain.ErrProvider, mr.Status, mr.ErrorMessage)
	}

	if len(mr.Rows) != 1 || len(mr.Rows[0].Elements) != 1 {
		return ports.DistanceResult{}, fmt.Errorf("%w: expected a 1x1 distance matrix", domain.ErrProvider)
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return ports.DistanceResult{}, fmt.Errorf(
			"%w: no walking route %s -> %s: %s",
			domain.ErrProvider, origin.Key(), destination.Key(), el.Status,
		)
	}

	return ports.DistanceResult{
		DistanceMiles:   round2(el.Distance.Value * metersToMiles),
		DurationMinutes: round2(el.Duration.Value * secondsToMinute),
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
