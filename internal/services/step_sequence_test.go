package services

import (
	"campus-route-finder/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpoints(steps []domain.Step) [][2]string {
	out := make([][2]string, len(steps))
	for i, s := range steps {
		out[i] = [2]string{s.StartLocation, s.EndLocation}
	}
	return out
}

func TestInsertSlot(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C")}

	tests := []struct {
		name     string
		steps    []domain.Step
		position int
		want     Slot
	}{
		{"empty route", nil, 1, Slot{Position: 1}},
		{"front", steps, 1, Slot{Position: 1, FixedEnd: "A"}},
		{"middle", steps, 2, Slot{Position: 2, FixedStart: "B"}},
		{"append", steps, 3, Slot{Position: 3, FixedStart: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertSlot(tt.steps, tt.position)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertStepMiddleReroutesThroughNewBuilding(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C")}

	got, err := InsertStep(steps, 2, domain.Step{EndLocation: "D"})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "D"}, {"D", "C"}}, endpoints(got))
	assert.True(t, domain.Chained(got))
	assert.True(t, domain.Dense(got))
	for i, s := range got {
		assert.Equal(t, i+1, s.Order)
	}
}

func TestInsertStepFrontAndBack(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C")}

	front, err := InsertStep(steps, 1, domain.Step{StartLocation: "D", EndLocation: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"D", "A"}, {"A", "B"}, {"B", "C"}}, endpoints(front))

	back, err := InsertStep(steps, 3, domain.Step{StartLocation: "ignored", EndLocation: "D"})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}, endpoints(back))
	assert.True(t, domain.Dense(back))
}

func TestInsertStepEmptyRoute(t *testing.T) {
	got, err := InsertStep(nil, 1, domain.Step{StartLocation: "A", EndLocation: "B", DistanceMiles: 0.3})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Order)
	assert.Equal(t, 0.3, got[0].DistanceMiles)

	_, err = InsertStep(nil, 1, domain.Step{EndLocation: "B"})
	assert.ErrorIs(t, err, domain.ErrIncompleteLeg)
}

func TestInsertStepRejectsOutOfRangePosition(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C"), leg(3, "C", "D")}

	for _, pos := range []int{0, -1, 5} {
		_, err := InsertStep(steps, pos, domain.Step{StartLocation: "A", EndLocation: "B"})
		assert.ErrorIs(t, err, domain.ErrInvalidPosition, "position %d", pos)
	}
}

func TestInsertStepDoesNotMutateInput(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C")}
	before := append([]domain.Step(nil), steps...)

	_, err := InsertStep(steps, 2, domain.Step{EndLocation: "D"})
	require.NoError(t, err)
	assert.Equal(t, before, steps)
}

func TestInsertStepSortsUnorderedInput(t *testing.T) {
	steps := []domain.Step{leg(2, "B", "C"), leg(1, "A", "B")}

	got, err := InsertStep(steps, 3, domain.Step{EndLocation: "D"})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}, endpoints(got))
}

func TestDeleteStep(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C"), leg(3, "C", "D")}

	t.Run("middle", func(t *testing.T) {
		got, err := DeleteStep(steps, 1, false)
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"A", "B"}, {"B", "D"}}, endpoints(got))
		assert.True(t, domain.Dense(got))
	})

	t.Run("first keeps free start", func(t *testing.T) {
		got, err := DeleteStep(steps, 0, false)
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"B", "C"}, {"C", "D"}}, endpoints(got))
		assert.Equal(t, 1, got[0].Order)
	})

	t.Run("last", func(t *testing.T) {
		got, err := DeleteStep(steps, 2, false)
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}}, endpoints(got))
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := DeleteStep(steps, 3, true)
		assert.ErrorIs(t, err, domain.ErrInvalidIndex)
		_, err = DeleteStep(steps, -1, true)
		assert.ErrorIs(t, err, domain.ErrInvalidIndex)
	})
}

func TestDeleteOnlyStepNeedsConfirmation(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B")}

	kept, err := DeleteStep(steps, 0, false)
	require.NoError(t, err)
	assert.Equal(t, steps, kept)

	gone, err := DeleteStep(steps, 0, true)
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestInsertThenDeleteRestoresEndpoints(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "B", "C"), leg(3, "C", "D")}

	for pos := 1; pos <= len(steps)+1; pos++ {
		// At the front the new leg's end is forced, so the caller picks its start.
		added := domain.Step{EndLocation: "X"}
		if pos == 1 {
			added = domain.Step{StartLocation: "X"}
		}

		inserted, err := InsertStep(steps, pos, added)
		require.NoError(t, err)

		restored, err := DeleteStep(inserted, pos-1, false)
		require.NoError(t, err)

		assert.Equal(t, endpoints(steps), endpoints(restored), "position %d", pos)
	}
}

func TestCascade(t *testing.T) {
	steps := []domain.Step{leg(1, "A", "B"), leg(2, "Z", "C"), leg(3, "Y", "D")}
	steps[1].DistanceMiles = 1.1

	got := Cascade(steps)

	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}, endpoints(got))
	assert.Equal(t, 1.1, got[1].DistanceMiles)
	assert.Equal(t, "Z", steps[1].StartLocation, "input must not change")
	assert.Empty(t, Cascade(nil))
}
