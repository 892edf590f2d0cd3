package engine

import (
	"context"
	"sync"
	"time"

	"github.com/datallboy/otmget/internal/app"
	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/infra/config"
	"github.com/datallboy/otmget/internal/platform"
	"github.com/datallboy/otmget/internal/progress"
)

// Downloader is the concrete implementation of the download engine.
type Downloader struct {
	ctx       *app.Context
	writer    *FileWriter
	reporter  progress.Reporter
	workers   int
	chunkSize int
	buffers   sync.Pool
}

func NewDownloader(ctx *app.Context, reporter progress.Reporter) *Downloader {
	if reporter == nil {
		reporter = progress.Nop
	}

	workers := config.DefaultWorkers
	chunkSize := config.DefaultChunkSize
	if ctx.Config != nil {
		if ctx.Config.Download.Workers > 0 {
			workers = ctx.Config.Download.Workers
		}
		if ctx.Config.Download.ChunkSize > 0 {
			chunkSize = ctx.Config.Download.ChunkSize
		}
	}

	d := &Downloader{
		ctx:       ctx,
		writer:    NewFileWriter(),
		reporter:  reporter,
		workers:   workers,
		chunkSize: chunkSize,
	}
	d.buffers.New = func() any {
		b := make([]byte, d.chunkSize)
		return &b
	}
	return d
}

// DownloadAll fetches every target into destDir and returns one outcome per
// target, outcomes[i] belonging to targets[i]. A failing target never stops
// the others; the call returns once all of them have finished.
func (d *Downloader) DownloadAll(ctx context.Context, targets []domain.Target, destDir string) []domain.Outcome {
	defer d.writer.CloseAll()

	if len(targets) == 0 {
		return []domain.Outcome{}
	}

	if err := platform.EnsureDir(destDir); err != nil {
		d.ctx.Logger.Error("Cannot prepare %s: %v", destDir, err)
		return failAll(targets, err)
	}

	d.ctx.Logger.Info("Starting download of %d archives into %s", len(targets), destDir)
	started := time.Now()

	outcomes := d.runWorkerPool(ctx, targets, destDir)

	d.ctx.Logger.Info("Finished %d of %d downloads in %s",
		domain.CountSucceeded(outcomes), len(outcomes), time.Since(started).Truncate(time.Millisecond))

	return outcomes
}

func failAll(targets []domain.Target, err error) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(targets))
	for i, t := range targets {
		outcomes[i] = domain.Outcome{Target: t, Error: err.Error()}
	}
	return outcomes
}
