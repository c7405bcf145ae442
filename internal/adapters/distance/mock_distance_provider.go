package distance

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/ports"
	"context"
	"fmt"
)

type MockPair struct {
	From, To domain.Coordinates
	Miles    float64
	Minutes  float64
}

// MockDistanceProvider answers from a fixed table and counts lookups.
type MockDistanceProvider struct {
	m     map[string]ports.DistanceResult
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = ports.DistanceResult{DistanceMiles: p.Miles, DurationMinutes: p.Minutes}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	p.Calls++
	r, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("%w: missing pair %s -> %s", domain.ErrProvider, origin.Key(), destination.Key())
	}

	return r, nil
}
