// Package modkit provides module wiring and core deps
package modkit

import (
	"fixred/internal/platform/config"
	"fixred/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}

// NewDeps returns Deps over the process root logger and env config
func NewDeps() Deps {
	return Deps{Log: *logger.Get(), Cfg: config.New()}
}
