package ensemble

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/montplusa/mind-reader/pkg/game"
)

var ErrNoExperts = errors.New("ensemble needs at least one expert")

// Ensemble combines its experts with exponential weights and binarizes the
// weighted opinion against a fresh uniform sample each turn.
type Ensemble struct {
	totalTurns int
	eta        float64
	experts    []Predictor
	history    *game.History
	turn       int
	rng        game.Rand

	next       game.Move
	q          float64
	degenerate bool
}

// Option configures an Ensemble.
type Option func(*Ensemble)

// WithExperts replaces the default experts.
func WithExperts(experts ...Predictor) Option {
	return func(e *Ensemble) {
		e.experts = experts
	}
}

// New builds an ensemble for a match of totalTurns turns and computes the
// prediction for turn 0.
func New(totalTurns int, rng game.Rand, opts ...Option) (*Ensemble, error) {
	if totalTurns < 1 {
		return nil, game.NewInvalidTurnCountError(totalTurns)
	}
	e := &Ensemble{
		totalTurns: totalTurns,
		history:    game.NewHistory(totalTurns),
		rng:        rng,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.experts == nil {
		e.experts = DefaultExperts()
	}
	if len(e.experts) == 0 {
		return nil, ErrNoExperts
	}
	e.eta = math.Sqrt(math.Log(float64(len(e.experts))) / float64(2*totalTurns-1))
	e.recompute()
	return e, nil
}

func (e *Ensemble) Name() string {
	return "ensemble"
}

// PredictNext returns the prediction for the upcoming turn.
func (e *Ensemble) PredictNext() (game.Move, error) {
	return e.next, nil
}

// RecordOpponentMove appends the realized move and its outcome, advances the
// turn and recomputes the next prediction.
func (e *Ensemble) RecordOpponentMove(m game.Move) error {
	if err := game.CheckMove(m); err != nil {
		return err
	}
	e.history.Append(m, game.OutcomeOf(e.next, m))
	e.turn++
	e.recompute()
	return nil
}

func (e *Ensemble) Turn() int              { return e.turn }
func (e *Ensemble) TotalTurns() int        { return e.totalTurns }
func (e *Ensemble) Eta() float64           { return e.eta }
func (e *Ensemble) History() *game.History { return e.history }
func (e *Ensemble) Experts() []Predictor   { return e.experts }

// Aggregate is the weighted opinion q behind the current prediction. It is 0
// when the last aggregation was degenerate.
func (e *Ensemble) Aggregate() float64 { return e.q }

// Degenerate reports whether the current prediction came from the uniform
// fallback because every weight vanished.
func (e *Ensemble) Degenerate() bool { return e.degenerate }

func (e *Ensemble) recompute() {
	moves := e.history.Moves()
	opinions := make([]float64, len(e.experts))
	accuracies := make([]float64, len(e.experts))
	for i, p := range e.experts {
		accuracies[i] = p.PastAccuracy(moves)
		opinions[i] = p.MakePrediction(e.history)
	}

	q, ok := aggregate(opinions, accuracies, e.eta)
	if !ok {
		e.q, e.degenerate = 0, true
		e.next = game.Right
		if e.rng.Float64() < 0.5 {
			e.next = game.Left
		}
		log.WithFields(log.Fields{"turn": e.turn, "prediction": e.next}).
			Warn("all expert weights vanished, predicting at random")
		return
	}

	sample := e.rng.Float64()*2 - 1
	e.q, e.degenerate = q, false
	e.next = threshold(q, sample)

	log.WithFields(log.Fields{
		"turn":       e.turn,
		"q":          q,
		"sample":     sample,
		"prediction": e.next,
	}).Debug("ensemble prediction")
}

// aggregate is the weighted mean of the opinions with weights exp(-eta*accuracy).
// ok is false when the weights sum to zero or overflow.
func aggregate(opinions, accuracies []float64, eta float64) (q float64, ok bool) {
	var num, den float64
	for i, o := range opinions {
		if math.IsNaN(o) {
			o = 0
		}
		w := math.Exp(-eta * accuracies[i])
		num += o * w
		den += w
	}
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0, false
	}
	q = num / den
	if math.IsNaN(q) {
		return 0, false
	}
	return q, true
}

// threshold turns q into a move: Left when q falls below the sample drawn from [-1, 1].
func threshold(q, sample float64) game.Move {
	if q < sample {
		return game.Left
	}
	return game.Right
}
