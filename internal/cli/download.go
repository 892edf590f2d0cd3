package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/engine"
	"github.com/datallboy/otmget/internal/infra/config"
	"github.com/datallboy/otmget/internal/platform"
	"github.com/datallboy/otmget/internal/progress"
	"github.com/datallboy/otmget/internal/selector"
	"github.com/datallboy/otmget/internal/targets"
)

// download runs one batch: catalog, selection, targets, transfer, summary.
// It fails when the catalog cannot be loaded or any archive failed.
func (s *session) download(ctx context.Context, in io.Reader, out io.Writer, names []string, plain bool) error {
	a := s.app

	records, err := a.Catalog.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	prompter := selector.NewPrompter(in, out)

	selection, err := choose(prompter, records, names)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		fmt.Fprintln(out, "No maps selected, nothing to download.")
		return nil
	}

	builder := targets.NewBuilder(a.Config.Catalog.BaseURL, confirmerFor(a.Config.Download.BaseCamp, prompter))
	tgts, err := builder.Build(selection)
	if err != nil {
		return err
	}

	destDir, err := platform.DownloadDir(a.Config.Download.OutDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Starts downloading, please wait")

	reporter, finish := s.reporterFor(out, plain)
	a.Downloader = engine.NewDownloader(a, reporter)
	outcomes := a.Downloader.DownloadAll(ctx, tgts, destDir)
	if err := finish(); err != nil {
		a.Logger.Warn("Progress display: %v", err)
	}

	printSummary(out, outcomes)

	if failed := len(outcomes) - domain.CountSucceeded(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(outcomes))
	}
	return nil
}

// choose selects by name and falls back to the numbered list when no name
// matched anything.
func choose(p *selector.Prompter, records []domain.Record, names []string) ([]domain.Record, error) {
	if len(names) > 0 {
		if selection := selector.SelectByName(records, names); len(selection) > 0 {
			return selection, nil
		}
		fmt.Fprintln(p.Out(), "cannot parse your input args, please pick from this:")
	}
	return p.SelectInteractive(records)
}

func confirmerFor(mode string, p *selector.Prompter) targets.Confirmer {
	switch mode {
	case config.BaseCampYes:
		return targets.Always(true)
	case config.BaseCampNo:
		return targets.Always(false)
	default:
		return targets.NewConsoleConfirmer(p, p.Out())
	}
}

// reporterFor picks the progress display. The returned func must be called
// once the batch has finished.
func (s *session) reporterFor(out io.Writer, plain bool) (progress.Reporter, func() error) {
	if plain || !isTerminal(out) {
		return progress.NewPlain(out), func() error { return nil }
	}

	// The bars own the terminal until Wait returns
	s.app.Logger.SetConsole(false)
	tui := progress.NewTUI(out)
	return tui, func() error {
		defer s.app.Logger.SetConsole(true)
		return tui.Wait()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
