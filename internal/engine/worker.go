package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/datallboy/otmget/internal/domain"
)

// runWorkerPool runs every target on a bounded set of workers and collects
// the outcomes in submission order.
func (d *Downloader) runWorkerPool(ctx context.Context, targets []domain.Target, destDir string) []domain.Outcome {
	workerCount := min(d.workers, len(targets))
	bufferSize := workerCount * 2

	jobs := make(chan DownloadJob, bufferSize)
	results := make(chan DownloadResult, bufferSize)

	// Start the Workers
	var g errgroup.Group
	for w := 1; w <= workerCount; w++ {
		g.Go(func() error {
			d.worker(ctx, jobs, results)
			return nil
		})
	}

	// Dispatch Jobs
	go d.dispatchJobs(targets, destDir, jobs)

	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Collect Results
	outcomes := make([]domain.Outcome, len(targets))
	for res := range results {
		outcomes[res.Job.Index] = res.Outcome
	}
	return outcomes
}

// worker pulls jobs until the channel is closed. Every job it receives
// yields exactly one result, also after ctx is cancelled.
func (d *Downloader) worker(ctx context.Context, jobs <-chan DownloadJob, results chan<- DownloadResult) {
	for job := range jobs {
		results <- DownloadResult{Job: job, Outcome: d.processTarget(ctx, job)}
	}
}

// dispatchJobs submits every target and closes jobs.
func (d *Downloader) dispatchJobs(targets []domain.Target, destDir string, jobs chan<- DownloadJob) {
	defer close(jobs)
	for i, t := range targets {
		jobs <- DownloadJob{Index: i, Target: t, DestDir: destDir}
	}
}

// processTarget downloads one archive. Every error ends up in the outcome.
func (d *Downloader) processTarget(ctx context.Context, job DownloadJob) domain.Outcome {
	out := domain.Outcome{Target: job.Target}
	name := job.Target.FileName()

	fail := func(n int64, err error) domain.Outcome {
		d.ctx.Logger.Warn("[FAIL] %s: %v", job.Target, err)
		out.Bytes = n
		out.Error = err.Error()
		return out
	}

	if name == "" || name == "." || name == "/" {
		err := fmt.Errorf("%w: cannot derive a file name from %s", domain.ErrFileSystem, job.Target)
		d.reporter.Track(job.Index, job.Target.String(), -1).Done(err)
		return fail(0, err)
	}

	total, err := d.probeSize(ctx, job.Target)
	if err != nil {
		d.reporter.Track(job.Index, name, -1).Done(err)
		return fail(0, err)
	}

	indicator := d.reporter.Track(job.Index, name, total)
	localPath := filepath.Join(job.DestDir, name)

	n, err := d.fetch(ctx, job.Target, localPath, indicator.Add)
	indicator.Done(err)
	if err != nil {
		return fail(n, err)
	}

	d.ctx.Logger.Debug("Saved %s (%d bytes)", localPath, n)
	out.LocalPath = localPath
	out.Bytes = n
	return out
}

// probeSize asks for the archive size with a HEAD request. -1 means the
// server did not tell; only a transport failure is an error.
func (d *Downloader) probeSize(ctx context.Context, target domain.Target) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.String(), http.NoBody)
	if err != nil {
		return -1, fmt.Errorf("%w: setting up HEAD request: %w", domain.ErrNetwork, err)
	}

	resp, err := d.ctx.HTTPClient.Do(req)
	if err != nil {
		return -1, fmt.Errorf("%w: performing HEAD request: %w", domain.ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.ctx.Logger.Debug("HEAD %s returned %d, size unknown", target, resp.StatusCode)
		return -1, nil
	}
	return resp.ContentLength, nil
}

// fetch streams target into localPath chunk by chunk, calling advance after
// each chunk is on disk. It returns the number of bytes written.
func (d *Downloader) fetch(ctx context.Context, target domain.Target, localPath string, advance func(int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: setting up HTTP request: %w", domain.ErrNetwork, err)
	}

	resp, err := d.ctx.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: server returned status: %d", domain.ErrNetwork, resp.StatusCode)
	}

	if err := d.writer.Create(localPath); err != nil {
		return 0, err
	}

	written, err := d.copyChunks(resp.Body, localPath, advance)
	if cerr := d.writer.CloseFile(localPath); cerr != nil && err == nil {
		err = cerr
	}
	return written, err
}

func (d *Downloader) copyChunks(body io.Reader, localPath string, advance func(int64)) (int64, error) {
	bp := d.buffers.Get().(*[]byte)
	defer d.buffers.Put(bp)
	buf := *bp

	var written int64
	for {
		n, rerr := readChunk(body, buf)
		if n > 0 {
			if err := d.writer.Write(localPath, buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			advance(int64(n))
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: reading body: %w", domain.ErrNetwork, rerr)
		}
	}
}

// readChunk fills buf unless the body ends or fails first. Unlike
// io.ReadFull it passes the reader's own error through, so a dropped
// connection is not mistaken for a short last chunk.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		nn, err := r.Read(buf[n:])
		n += nn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
