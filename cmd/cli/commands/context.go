package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/kishan-gau/rosteriq/internal/config"
	"github.com/kishan-gau/rosteriq/pkg/store"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Store  store.Store
	Logger *zap.Logger
	Ctx    context.Context
}
