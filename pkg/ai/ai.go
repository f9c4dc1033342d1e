package ai

import (
	"github.com/pkg/errors"

	"github.com/montplusa/mind-reader/pkg/ai/bushmosteller"
	"github.com/montplusa/mind-reader/pkg/ai/ensemble"
	"github.com/montplusa/mind-reader/pkg/ai/random"
	"github.com/montplusa/mind-reader/pkg/config"
	"github.com/montplusa/mind-reader/pkg/game"
)

var ErrUnknownEngine = errors.New("unknown engine")

// Names lists the engines New can build.
var Names = []string{"ensemble", "bush-mosteller", "random"}

// New builds the engine named by cfg.Engine for a fresh match.
func New(cfg config.Config, rng game.Rand) (game.AI, error) {
	switch cfg.Engine {
	case "ensemble":
		e, err := ensemble.New(cfg.TotalTurns, rng)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "bush-mosteller":
		p, err := bushmosteller.New(cfg.TotalTurns, rng,
			bushmosteller.WithProbabilities(cfg.LeftProb, cfg.RightProb),
			bushmosteller.WithAspirationDivider(cfg.AspirationDivider),
			bushmosteller.WithLearningRate(cfg.LearningRate),
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "random":
		return random.New(rng), nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", cfg.Engine)
	}
}
