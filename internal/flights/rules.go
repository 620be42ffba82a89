package flights

import (
	"fmt"
	"time"

	"airport_traffic/internal/models"
)

// StatusWeights is a categorical distribution over flight statuses. Weights
// need not sum to one; non-positive weights are never drawn.
type StatusWeights struct {
	OnTime    float64 `json:"on_time"`
	Delayed   float64 `json:"delayed"`
	Cancelled float64 `json:"cancelled"`
}

func (w StatusWeights) weight(s models.FlightStatus) float64 {
	switch s {
	case models.StatusOnTime:
		return w.OnTime
	case models.StatusDelayed:
		return w.Delayed
	case models.StatusCancelled:
		return w.Cancelled
	}
	return 0
}

func (w StatusWeights) validate() error {
	if w.OnTime < 0 || w.Delayed < 0 || w.Cancelled < 0 {
		return fmt.Errorf("%w: negative status weight", models.ErrOutOfRange)
	}
	if w.OnTime+w.Delayed+w.Cancelled <= 0 {
		return fmt.Errorf("%w: status weights sum to zero", models.ErrOutOfRange)
	}
	return nil
}

// GenerateRules parameterizes the initial batch.
type GenerateRules struct {
	InternationalShare float64
	EarliestOffset     time.Duration
	LatestOffset       time.Duration
	Status             StatusWeights
	DelayMin           int
	DelayMax           int
	GateLetters        string
	GateMax            int
	FlightNumberMin    int
	FlightNumberMax    int
}

func DefaultGenerateRules() GenerateRules {
	return GenerateRules{
		InternationalShare: 0.7,
		EarliestOffset:     -2 * time.Hour,
		LatestOffset:       6 * time.Hour,
		Status:             StatusWeights{OnTime: 0.7, Delayed: 0.25, Cancelled: 0.05},
		DelayMin:           1,
		DelayMax:           180,
		GateLetters:        "ABCDE",
		GateMax:            50,
		FlightNumberMin:    1000,
		FlightNumberMax:    9999,
	}
}

func (g GenerateRules) validate() error {
	if g.InternationalShare < 0 || g.InternationalShare > 1 {
		return fmt.Errorf("%w: international share %v", models.ErrOutOfRange, g.InternationalShare)
	}
	if g.LatestOffset < g.EarliestOffset {
		return fmt.Errorf("%w: departure window %v..%v", models.ErrOutOfRange, g.EarliestOffset, g.LatestOffset)
	}
	if err := g.Status.validate(); err != nil {
		return err
	}
	if g.DelayMin < 1 || g.DelayMax < g.DelayMin {
		return fmt.Errorf("%w: delay range [%d,%d]", models.ErrOutOfRange, g.DelayMin, g.DelayMax)
	}
	if g.GateLetters == "" || g.GateMax < 1 {
		return fmt.Errorf("%w: gate layout", models.ErrOutOfRange)
	}
	if g.FlightNumberMin < 0 || g.FlightNumberMax < g.FlightNumberMin {
		return fmt.Errorf("%w: flight number range [%d,%d]", models.ErrOutOfRange, g.FlightNumberMin, g.FlightNumberMax)
	}
	return nil
}

// TickRules parameterizes one refresh step. Resampling is memoryless: the
// new status is drawn from Status regardless of the current one.
type TickRules struct {
	ResampleProbability float64
	Status              StatusWeights
	DelayMin            int
	DelayMax            int
}

func DefaultTickRules() TickRules {
	return TickRules{
		ResampleProbability: 0.1,
		Status:              StatusWeights{OnTime: 0.6, Delayed: 0.35, Cancelled: 0.05},
		DelayMin:            5,
		DelayMax:            120,
	}
}

func (t TickRules) validate() error {
	if t.ResampleProbability < 0 || t.ResampleProbability > 1 {
		return fmt.Errorf("%w: resample probability %v", models.ErrOutOfRange, t.ResampleProbability)
	}
	if err := t.Status.validate(); err != nil {
		return err
	}
	if t.DelayMin < 1 || t.DelayMax < t.DelayMin {
		return fmt.Errorf("%w: delay range [%d,%d]", models.ErrOutOfRange, t.DelayMin, t.DelayMax)
	}
	return nil
}
