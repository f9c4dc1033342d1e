//go:build js && wasm

package debug

import (
	"fmt"
	"syscall/js"
)

// Log はブラウザのコンソールにデバッグ出力する
func Log(format string, args ...any) {
	js.Global().Get("console").Call("debug", "[mind-reader] "+fmt.Sprintf(format, args...))
}
