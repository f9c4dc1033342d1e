// Package opponent provides scripted and learning players used to evaluate the
// prediction engines offline.
package opponent

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/montplusa/mind-reader/pkg/game"
)

var ErrInvalidOpponent = errors.New("invalid opponent")

// Names lists the opponents New can build with default parameters.
var Names = []string{"random", "biased", "periodic", "wsls", "neural"}

// New builds an opponent by name with its default parameters.
func New(name string, rng game.Rand) (game.Opponent, error) {
	switch name {
	case "random":
		return NewRandom(rng), nil
	case "biased":
		return NewBiased(0.75, rng)
	case "periodic":
		return NewPeriodic([]game.Move{game.Left, game.Left, game.Right})
	case "wsls":
		return NewWinStayLoseShift(game.Right), nil
	case "neural":
		return NewNeural(3, rng)
	default:
		return nil, errors.Wrapf(ErrInvalidOpponent, "unknown opponent %q", name)
	}
}

func coin(rng game.Rand, pRight float64) game.Move {
	if rng.Float64() < pRight {
		return game.Right
	}
	return game.Left
}

// Random plays each side with equal probability.
type Random struct {
	rng game.Rand
}

func NewRandom(rng game.Rand) *Random { return &Random{rng: rng} }

func (r *Random) Name() string                     { return "random" }
func (r *Random) NextMove() game.Move              { return coin(r.rng, 0.5) }
func (r *Random) Observe(own, predicted game.Move) {}

// Biased plays right with a fixed probability.
type Biased struct {
	pRight float64
	rng    game.Rand
}

func NewBiased(pRight float64, rng game.Rand) (*Biased, error) {
	if pRight < 0 || pRight > 1 {
		return nil, errors.Wrapf(ErrInvalidOpponent, "probability of right must be in [0, 1], got %v", pRight)
	}
	return &Biased{pRight: pRight, rng: rng}, nil
}

func (b *Biased) Name() string                     { return fmt.Sprintf("biased(%.2f)", b.pRight) }
func (b *Biased) NextMove() game.Move              { return coin(b.rng, b.pRight) }
func (b *Biased) Observe(own, predicted game.Move) {}

// Periodic repeats a fixed pattern forever.
type Periodic struct {
	pattern []game.Move
	pos     int
}

func NewPeriodic(pattern []game.Move) (*Periodic, error) {
	if len(pattern) == 0 {
		return nil, errors.Wrap(ErrInvalidOpponent, "empty pattern")
	}
	for _, m := range pattern {
		if err := game.CheckMove(m); err != nil {
			return nil, errors.Wrap(ErrInvalidOpponent, err.Error())
		}
	}
	return &Periodic{pattern: append([]game.Move(nil), pattern...)}, nil
}

func (p *Periodic) Name() string {
	return fmt.Sprintf("periodic(%d)", len(p.pattern))
}

func (p *Periodic) NextMove() game.Move {
	return p.pattern[p.pos]
}

func (p *Periodic) Observe(own, predicted game.Move) {
	p.pos = (p.pos + 1) % len(p.pattern)
}

// WinStayLoseShift repeats a move that beat the prediction and switches after
// being read correctly.
type WinStayLoseShift struct {
	next game.Move
}

func NewWinStayLoseShift(first game.Move) *WinStayLoseShift {
	if !first.Valid() {
		first = game.Right
	}
	return &WinStayLoseShift{next: first}
}

func (w *WinStayLoseShift) Name() string        { return "wsls" }
func (w *WinStayLoseShift) NextMove() game.Move { return w.next }

func (w *WinStayLoseShift) Observe(own, predicted game.Move) {
	if predicted == own {
		w.next = own.Opposite()
	} else {
		w.next = own
	}
}
