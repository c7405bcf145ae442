package services

import (
	"campus-route-finder/internal/domain"
	"cmp"
	"fmt"
	"slices"
)

// Slot describes which endpoints of a leg inserted at a position are fixed
// by its neighbours. An empty field means the caller must choose that building.
type Slot struct {
	Position   int
	FixedStart string
	FixedEnd   string
}

// InsertSlot validates position against steps and reports the forced endpoints
// of a leg inserted there.
//
// Position is 1-based in [1, len(steps)+1]. Inserting at 1 fixes the new leg's
// end to the current first start; any other position fixes its start to the
// end of the step before it. An empty sequence fixes nothing.
func InsertSlot(steps []domain.Step, position int) (Slot, error) {
	if position < 1 || position > len(steps)+1 {
		return Slot{}, fmt.Errorf("insert slot: position %d outside [1, %d]: %w", position, len(steps)+1, domain.ErrInvalidPosition)
	}

	ordered := sortedCopy(steps)
	slot := Slot{Position: position}
	switch {
	case len(ordered) == 0:
	case position == 1:
		slot.FixedEnd = ordered[0].StartLocation
	default:
		slot.FixedStart = ordered[position-2].EndLocation
	}
	return slot, nil
}

// InsertStep returns a new sequence with leg inserted at position.
//
// The forced endpoint reported by InsertSlot overwrites the matching field of
// leg; the other endpoint must be supplied. Existing steps at or after the
// position shift down by one, and the result is re-chained with Cascade.
// Distances of shifted steps are left as they were.
func InsertStep(steps []domain.Step, position int, leg domain.Step) ([]domain.Step, error) {
	slot, err := InsertSlot(steps, position)
	if err != nil {
		return nil, fmt.Errorf("insert step: %w", err)
	}

	if slot.FixedStart != "" {
		leg.StartLocation = slot.FixedStart
	}
	if slot.FixedEnd != "" {
		leg.EndLocation = slot.FixedEnd
	}
	if leg.StartLocation == "" || leg.EndLocation == "" {
		return nil, fmt.Errorf(
			"insert step: position %d needs start and end, got %q -> %q: %w",
			position, leg.StartLocation, leg.EndLocation, domain.ErrIncompleteLeg,
		)
	}

	out := sortedCopy(steps)
	for i := range out {
		if out[i].Order >= position {
			out[i].Order++
		}
	}

	leg.Order = position
	out = append(out, leg)
	sortByOrder(out)

	return cascade(out), nil
}

// DeleteStep returns a new sequence without the step at index.
//
// Index is 0-based into the steps as given. Removing the only step empties the
// route, so it happens only when confirmed; otherwise the sequence comes back
// unchanged. Remaining orders are renumbered 1..N-1 and re-chained.
func DeleteStep(steps []domain.Step, index int, confirmed bool) ([]domain.Step, error) {
	if index < 0 || index >= len(steps) {
		return nil, fmt.Errorf("delete step: index %d outside [0, %d]: %w", index, len(steps)-1, domain.ErrInvalidIndex)
	}

	if len(steps) == 1 && !confirmed {
		return slices.Clone(steps), nil
	}

	out := make([]domain.Step, 0, len(steps)-1)
	out = append(out, steps[:index]...)
	out = append(out, steps[index+1:]...)

	sortByOrder(out)
	for i := range out {
		out[i].Order = i + 1
	}

	return cascade(out), nil
}

// Cascade returns a copy of steps in which every step starts where the previous
// one ends. The first start and the last end are the free endpoints of the
// path and are never changed.
func Cascade(steps []domain.Step) []domain.Step {
	return cascade(slices.Clone(steps))
}

// cascade repairs chaining in place. steps must already be sorted by order.
func cascade(steps []domain.Step) []domain.Step {
	for i := 0; i+1 < len(steps); i++ {
		steps[i+1].StartLocation = steps[i].EndLocation
	}
	return steps
}

// Steps sort by order. Equal orders are not expected and keep no particular
// relative position.
func sortByOrder(steps []domain.Step) {
	slices.SortFunc(steps, func(a, b domain.Step) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

func sortedCopy(steps []domain.Step) []domain.Step {
	out := slices.Clone(steps)
	sortByOrder(out)
	return out
}
