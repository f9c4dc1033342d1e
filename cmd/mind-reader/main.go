//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"math/rand"
	"syscall/js"
	"time"

	"github.com/pkg/errors"

	"github.com/montplusa/mind-reader/pkg/ai"
	"github.com/montplusa/mind-reader/pkg/config"
	"github.com/montplusa/mind-reader/pkg/game"
)

var session *game.Session

var errNoMatch = errors.New("no match started; call newMatch first")

// reply は結果を JSON 文字列にシリアライズする。エラーは {"error": "..."} で返す
func reply(v interface{}, err error) interface{} {
	if err != nil {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(b)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// newMatch(engine?, turns?) は新しいセッションを作る
func newMatch(this js.Value, args []js.Value) interface{} {
	cfg := config.Default()
	if len(args) > 0 && args[0].Type() == js.TypeString {
		cfg.Engine = args[0].String()
	}
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		cfg.TotalTurns = args[1].Int()
	}
	if err := cfg.Validate(); err != nil {
		return reply(nil, err)
	}

	seed := time.Now().UnixNano()
	s, err := game.NewSession(cfg.TotalTurns, func() (game.AI, error) {
		seed++
		return ai.New(cfg, rand.New(rand.NewSource(seed)))
	})
	if err != nil {
		return reply(nil, err)
	}
	session = s
	return reply(s.Snapshot(), nil)
}

func predictNext(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return reply(nil, errNoMatch)
	}
	return reply(session.Prediction())
}

// play(move) は -1 (左) か 1 (右) を受け取る
func play(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return reply(nil, errNoMatch)
	}
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return reply(nil, game.ErrInvalidMove)
	}
	m, err := game.ParseMove(args[0].Int())
	if err != nil {
		return reply(nil, err)
	}
	return reply(session.Play(m))
}

// forfeit は時間切れを通知する
func forfeit(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return reply(nil, errNoMatch)
	}
	return reply(session.Forfeit())
}

func restart(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return reply(nil, errNoMatch)
	}
	if err := session.Restart(); err != nil {
		return reply(nil, err)
	}
	return reply(session.Snapshot(), nil)
}

func main() {
	js.Global().Set("newMatch", js.FuncOf(newMatch))
	js.Global().Set("predictNext", js.FuncOf(predictNext))
	js.Global().Set("play", js.FuncOf(play))
	js.Global().Set("forfeit", js.FuncOf(forfeit))
	js.Global().Set("restart", js.FuncOf(restart))
	select {} // ブロック
}
