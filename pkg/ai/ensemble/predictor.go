package ensemble

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/montplusa/mind-reader/pkg/game"
)

// Kind selects which heuristic an expert runs.
type Kind int

const (
	Bias Kind = iota + 1
	Pattern
	Reactive
)

func (k Kind) String() string {
	switch k {
	case Bias:
		return "bias"
	case Pattern:
		return "pattern"
	case Reactive:
		return "reactive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source selects the series an expert reads. Reactive experts always pair the
// source with the outcome series.
type Source int

const (
	Moves Source = iota + 1
	Flips
)

func (s Source) String() string {
	if s == Flips {
		return "flips"
	}
	return "moves"
}

// maxReactiveMemory bounds the state table at 2^16 entries.
const maxReactiveMemory = 8

var ErrInvalidExpert = errors.New("invalid expert")

// Predictor is one expert of the ensemble.
type Predictor interface {
	Kind() Kind
	Source() Source
	MemoryLength() int
	// PastAccuracy is the cumulative absolute deviation between the expert's
	// past predictions and the realized moves. Lower is better.
	PastAccuracy(moves []float64) float64
	// MakePrediction returns the expert's opinion in [-1, 1] about the next move
	// and appends it to the expert's prediction history.
	MakePrediction(h *game.History) float64
	Predictions() []float64
}

// Expert implements Predictor for the closed set of kinds.
type Expert struct {
	kind        Kind
	source      Source
	memory      int
	predictions []float64
	table       *StateTable
}

// NewExpert validates the parameters and builds an expert.
func NewExpert(kind Kind, memory int, source Source) (*Expert, error) {
	if memory < 1 {
		return nil, errors.Wrapf(ErrInvalidExpert, "memory length must be positive, got %d", memory)
	}
	if source != Moves && source != Flips {
		return nil, errors.Wrapf(ErrInvalidExpert, "unknown source %d", int(source))
	}
	e := &Expert{kind: kind, source: source, memory: memory}
	switch kind {
	case Bias, Pattern:
	case Reactive:
		if memory > maxReactiveMemory {
			return nil, errors.Wrapf(ErrInvalidExpert, "reactive memory length must be at most %d, got %d", maxReactiveMemory, memory)
		}
		e.table = NewStateTable(memory)
	default:
		return nil, errors.Wrapf(ErrInvalidExpert, "unknown kind %d", int(kind))
	}
	return e, nil
}

func mustExpert(kind Kind, memory int, source Source) *Expert {
	e, err := NewExpert(kind, memory, source)
	if err != nil {
		panic(err)
	}
	return e
}

// DefaultExperts returns the standard set of eighteen experts.
func DefaultExperts() []Predictor {
	var experts []Predictor
	for _, src := range []Source{Moves, Flips} {
		for _, m := range []int{2, 3, 5} {
			experts = append(experts, mustExpert(Bias, m, src))
		}
	}
	for _, src := range []Source{Moves, Flips} {
		for _, m := range []int{2, 3, 4, 5} {
			experts = append(experts, mustExpert(Pattern, m, src))
		}
	}
	for _, src := range []Source{Flips, Moves} {
		for _, m := range []int{1, 2} {
			experts = append(experts, mustExpert(Reactive, m, src))
		}
	}
	return experts
}

func (e *Expert) Kind() Kind             { return e.kind }
func (e *Expert) Source() Source         { return e.source }
func (e *Expert) MemoryLength() int      { return e.memory }
func (e *Expert) Predictions() []float64 { return e.predictions }

// Table returns the reactive state table, nil for other kinds.
func (e *Expert) Table() *StateTable { return e.table }

func (e *Expert) String() string {
	return fmt.Sprintf("%s/%s/%d", e.kind, e.source, e.memory)
}

func (e *Expert) PastAccuracy(moves []float64) float64 {
	if len(e.predictions) < len(moves) {
		return 0
	}
	var acc float64
	for i, m := range moves {
		acc += math.Abs(m - e.predictions[i])
	}
	return acc
}

func (e *Expert) MakePrediction(h *game.History) float64 {
	data := h.Moves()
	if e.source == Flips {
		data = h.Flips()
	}

	var opinion float64
	switch e.kind {
	case Bias:
		opinion = biasOpinion(data, e.memory)
	case Pattern:
		opinion = patternOpinion(data, e.memory)
	case Reactive:
		opinion = e.table.Step(data, h.Outcomes())
	}

	// A flip opinion is about change: +1 means the opponent leaves the last move.
	if e.source == Flips {
		if last, ok := h.LastMove(); ok {
			opinion *= -float64(last)
		} else {
			opinion = 0
		}
	}
	if math.IsNaN(opinion) || math.IsInf(opinion, 0) {
		opinion = 0
	}

	e.predictions = append(e.predictions, opinion)
	return opinion
}
