// Package molecule coding=utf-8
// @Project : smilesgraph
// @File    : logging.go
package molecule

import "go.uber.org/zap"

// nopLogger is shared by every component that accepts an optional
// *zap.Logger, so callers that don't care about trace output never have to
// construct one (mirrors the nil-safe injected-logger pattern used in
// theRebelliousNerd-codenerd and turtacn-KeyIP-Intelligence).
var nopLogger = zap.NewNop()

func logOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return nopLogger
	}
	return l
}
