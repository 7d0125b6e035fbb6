// Package modkit holds the shared dependencies handed to pipeline modules
package modkit

import (
	"newsfeed/internal/modkit/repokit"
	"newsfeed/internal/platform/config"
	"newsfeed/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	DB  repokit.TxRunner
}
