package opponent

import (
	"fmt"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/pkg/errors"

	"github.com/montplusa/mind-reader/pkg/game"
)

const (
	neuralHidden     = 8
	neuralMaxHistory = 64 // examples kept for online training
	neuralEpochs     = 2
	neuralLearnRate  = 0.05
	neuralMomentum   = 0.5
	neuralExplore    = 0.1 // probability of a random move
)

type turnRecord struct {
	own, predicted game.Move
}

// Neural learns the engine: a small regression network maps the recent window of
// (own move, engine prediction) pairs to the engine's next prediction, and the
// player picks the other side. It retrains online after every turn.
type Neural struct {
	window   int
	rng      game.Rand
	network  *deep.Neural
	trainer  *training.OnlineTrainer
	recent   []turnRecord
	examples training.Examples
}

// NewNeural builds a learning opponent looking back window turns.
func NewNeural(window int, rng game.Rand) (*Neural, error) {
	if window < 1 {
		return nil, errors.Wrapf(ErrInvalidOpponent, "window must be positive, got %d", window)
	}

	network := deep.NewNeural(&deep.Config{
		Inputs:     2 * window,
		Layout:     []int{neuralHidden, 1},
		Activation: deep.ActivationTanh,
		Mode:       deep.ModeRegression,
		Loss:       deep.LossMeanSquared,
		Weight:     deep.NewNormal(0.5, 0.0),
		Bias:       true,
	})

	return &Neural{
		window:  window,
		rng:     rng,
		network: network,
		trainer: training.NewTrainer(training.NewSGD(neuralLearnRate, neuralMomentum, 0.0, false), 0),
	}, nil
}

func (n *Neural) Name() string {
	return fmt.Sprintf("neural(%d)", n.window)
}

// ExpectedPrediction is the network's estimate of the engine's next prediction
// in [-1, 1]-ish regression units.
func (n *Neural) ExpectedPrediction() float64 {
	return n.network.Predict(n.features())[0]
}

func (n *Neural) NextMove() game.Move {
	if len(n.examples) < n.window || n.rng.Float64() < neuralExplore {
		return coin(n.rng, 0.5)
	}
	if n.ExpectedPrediction() >= 0 {
		return game.Left
	}
	return game.Right
}

func (n *Neural) Observe(own, predicted game.Move) {
	if len(n.recent) >= n.window {
		n.examples = append(n.examples, training.Example{
			Input:    n.features(),
			Response: []float64{float64(predicted)},
		})
		if len(n.examples) > neuralMaxHistory {
			n.examples = n.examples[len(n.examples)-neuralMaxHistory:]
		}
		// Train shuffles its input; keep the chronological slice intact.
		batch := make(training.Examples, len(n.examples))
		copy(batch, n.examples)
		n.trainer.Train(n.network, batch, nil, neuralEpochs)
	}

	n.recent = append(n.recent, turnRecord{own: own, predicted: predicted})
	if len(n.recent) > n.window {
		n.recent = n.recent[len(n.recent)-n.window:]
	}
}

// features encodes the recent window, oldest first, zero-padded at the front.
func (n *Neural) features() []float64 {
	f := make([]float64, 2*n.window)
	offset := n.window - len(n.recent)
	for i, r := range n.recent {
		f[2*(offset+i)] = float64(r.own)
		f[2*(offset+i)+1] = float64(r.predicted)
	}
	return f
}
