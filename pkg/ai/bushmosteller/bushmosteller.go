package bushmosteller

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/montplusa/mind-reader/pkg/game"
)

// probabilityTolerance is how far pL+pR may drift from 1 before the split is
// treated as misconfigured.
const probabilityTolerance = 1e-3

// Policy predicts the opponent by reinforcing its own plays: a play that matched
// the opponent's move is made more likely, one that missed less likely, in
// proportion to a stimulus measured against a fixed aspiration level.
type Policy struct {
	totalTurns   int
	pL, pR       float64
	aspiration   float64
	learningRate float64
	rng          game.Rand

	stimulus float64
	lastPlay game.Move
	drawn    bool // lastPlay was drawn for the current turn
	turn     int
}

// Option configures a Policy.
type Option func(*Policy)

// WithProbabilities sets the initial left/right split.
func WithProbabilities(left, right float64) Option {
	return func(p *Policy) {
		p.pL, p.pR = left, right
	}
}

// WithAspirationDivider sets the aspiration level to |1/divider|.
func WithAspirationDivider(divider float64) Option {
	return func(p *Policy) {
		p.aspiration = math.Abs(1 / divider)
	}
}

// WithLearningRate sets the fraction of the stimulus applied per update.
func WithLearningRate(lr float64) Option {
	return func(p *Policy) {
		p.learningRate = lr
	}
}

// New builds a policy for a match of totalTurns turns. Defaults are an even
// split, an aspiration level of 0.5 and a learning rate of 0.5.
func New(totalTurns int, rng game.Rand, opts ...Option) (*Policy, error) {
	if totalTurns < 1 {
		return nil, game.NewInvalidTurnCountError(totalTurns)
	}
	p := &Policy{
		totalTurns:   totalTurns,
		pL:           0.5,
		pR:           0.5,
		aspiration:   0.5,
		learningRate: 0.5,
		rng:          rng,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) validate() error {
	if math.IsNaN(p.aspiration) || math.IsInf(p.aspiration, 0) || p.aspiration >= 1 {
		return newInvalidConfigError("aspiration level must be below 1, got %v", p.aspiration)
	}
	if math.IsNaN(p.learningRate) || p.learningRate < 0 || p.learningRate > 1 {
		return newInvalidConfigError("learning rate must be in [0, 1], got %v", p.learningRate)
	}
	if p.pL < 0 || p.pR < 0 {
		return newInvalidProbabilitiesError(p.pL, p.pR)
	}
	return checkProbabilities(p.pL, p.pR)
}

func checkProbabilities(left, right float64) error {
	if math.IsNaN(left+right) || math.Abs(left+right-1) > probabilityTolerance {
		return newInvalidProbabilitiesError(left, right)
	}
	return nil
}

func (p *Policy) Name() string {
	return "bush-mosteller"
}

// PredictNext draws this turn's play from the (pL, pR) split. The draw happens
// once per turn; later calls in the same turn return the same play.
func (p *Policy) PredictNext() (game.Move, error) {
	if p.drawn {
		return p.lastPlay, nil
	}
	if err := checkProbabilities(p.pL, p.pR); err != nil {
		return 0, err
	}
	if p.rng.Float64() < p.pL {
		p.lastPlay = game.Left
	} else {
		p.lastPlay = game.Right
	}
	p.drawn = true
	return p.lastPlay, nil
}

// Observe sets the stimulus from the opponent's realized move: payoff 1 when it
// matches the last play, 0 otherwise, scaled against the aspiration level and
// clamped below at -1.
func (p *Policy) Observe(opponent game.Move) error {
	if err := game.CheckMove(opponent); err != nil {
		return err
	}
	if !p.drawn {
		if _, err := p.PredictNext(); err != nil {
			return err
		}
	}

	payoff := 0.0
	if p.lastPlay == opponent {
		payoff = 1
	}
	p.stimulus = (payoff - p.aspiration) / math.Abs(1-p.aspiration)
	if p.stimulus < -1 {
		p.stimulus = -1
	}
	return nil
}

// UpdatePolicy moves the probability of the last play toward 1 on a non-negative
// stimulus and toward 0 on a negative one. The other probability is always the
// exact complement.
func (p *Policy) UpdatePolicy() {
	switch p.lastPlay {
	case game.Left:
		p.pL = reinforce(p.pL, p.stimulus, p.learningRate)
		p.pR = 1 - p.pL
	case game.Right:
		p.pR = reinforce(p.pR, p.stimulus, p.learningRate)
		p.pL = 1 - p.pR
	}

	log.WithFields(log.Fields{
		"turn":     p.turn,
		"stimulus": p.stimulus,
		"p_left":   p.pL,
		"p_right":  p.pR,
	}).Debug("bush-mosteller update")
}

func reinforce(prob, stimulus, lr float64) float64 {
	if stimulus >= 0 {
		return prob + lr*stimulus*(1-prob)
	}
	return prob + lr*stimulus*prob
}

// RecordOpponentMove observes the move, updates the policy and starts the next turn.
func (p *Policy) RecordOpponentMove(m game.Move) error {
	if err := p.Observe(m); err != nil {
		return err
	}
	p.UpdatePolicy()
	p.drawn = false
	p.turn++
	return nil
}

// Probabilities returns the current (left, right) split.
func (p *Policy) Probabilities() (left, right float64) {
	return p.pL, p.pR
}

func (p *Policy) Stimulus() float64        { return p.stimulus }
func (p *Policy) LastPlay() game.Move      { return p.lastPlay }
func (p *Policy) AspirationLevel() float64 { return p.aspiration }
func (p *Policy) Turn() int                { return p.turn }
func (p *Policy) TotalTurns() int          { return p.totalTurns }
