package app

import (
	"context"
	"net/http"

	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/infra/config"
	"github.com/datallboy/otmget/internal/infra/logger"
	"github.com/segmentio/ksuid"
)

type Catalog interface {
	// This allows the CLI to list and select without importing the catalog package
	Fetch(ctx context.Context) ([]domain.Record, error)
}

type Downloader interface {
	DownloadAll(ctx context.Context, targets []domain.Target, destDir string) []domain.Outcome
}

// Context hold the core environment and shared resources for otmget.
type Context struct {
	Config *config.Config
	Logger *logger.Logger

	// RunID identifies one invocation in the debug log
	RunID string

	// Shared by the catalog client and the download engine. No client-wide
	// timeout: archives can take a long time.
	HTTPClient *http.Client

	Catalog    Catalog
	Downloader Downloader
}

// NewContext initializes the base environment.
func NewContext(cfg *config.Config, log *logger.Logger) *Context {
	return &Context{
		Config:     cfg,
		Logger:     log,
		RunID:      ksuid.New().String(),
		HTTPClient: &http.Client{},
	}
}
