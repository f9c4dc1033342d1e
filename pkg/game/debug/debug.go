//go:build !(js && wasm)

package debug

import (
	log "github.com/sirupsen/logrus"
)

// Log はネイティブ環境では logrus の Debug レベルに出力する
func Log(format string, args ...any) {
	log.WithField("component", "mind-reader").Debugf(format, args...)
}
