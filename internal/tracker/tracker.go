package tracker

import (
	"errors"
	"fmt"
)

var ErrUnknownStage = errors.New("unknown order stage")

type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	StagePlaced    = "placed"
	StageConfirmed = "confirmed"
	StagePreparing = "preparing"
	StageDelivery  = "delivery"
	StageDelivered = "delivered"
)

// DefaultStages is the fixed order lifecycle, first to last.
var DefaultStages = []Stage{
	{ID: StagePlaced, Name: "Order Placed"},
	{ID: StageConfirmed, Name: "Confirmed"},
	{ID: StagePreparing, Name: "Preparing Food"},
	{ID: StageDelivery, Name: "Out for Delivery"},
	{ID: StageDelivered, Name: "Delivered"},
}

// Step is one stage as seen from the current stage. Exactly one of
// Completed, Active and Pending is set.
type Step struct {
	Stage
	Completed bool `json:"completed"`
	Active    bool `json:"active"`
	Pending   bool `json:"pending"`
}

func StageIndex(stages []Stage, current string) (int, error) {
	for i, s := range stages {
		if s.ID == current {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownStage, current)
}

func Progress(stages []Stage, current string) ([]Step, error) {
	c, err := StageIndex(stages, current)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(stages))
	for i, s := range stages {
		steps[i] = Step{
			Stage:     s,
			Completed: i < c,
			Active:    i == c,
			Pending:   i > c,
		}
	}
	return steps, nil
}

func IsTerminal(stages []Stage, id string) bool {
	return len(stages) > 0 && stages[len(stages)-1].ID == id
}

func Valid(stages []Stage, id string) bool {
	_, err := StageIndex(stages, id)
	return err == nil
}
