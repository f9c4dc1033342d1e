package random

import (
	"github.com/montplusa/mind-reader/pkg/game"
)

// RandomAI は左右を等確率で予測するベースライン
type RandomAI struct {
	rng  game.Rand
	next game.Move
	turn int
}

// New は RandomAI を生成し、最初の予測を引く
func New(rng game.Rand) *RandomAI {
	r := &RandomAI{rng: rng}
	r.draw()
	return r
}

func (r *RandomAI) Name() string {
	return "random"
}

func (r *RandomAI) PredictNext() (game.Move, error) {
	return r.next, nil
}

func (r *RandomAI) RecordOpponentMove(m game.Move) error {
	if err := game.CheckMove(m); err != nil {
		return err
	}
	r.turn++
	r.draw()
	return nil
}

// Turn は記録済みのターン数
func (r *RandomAI) Turn() int {
	return r.turn
}

func (r *RandomAI) draw() {
	if r.rng.Float64() < 0.5 {
		r.next = game.Left
	} else {
		r.next = game.Right
	}
}
