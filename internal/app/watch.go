package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/dts/internal/adapters/watcher"
	"go.trai.ch/dts/internal/core/domain"
	"go.trai.ch/dts/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// watch builds once and then rebuilds whenever a file the last build depended on changes.
// Failed builds are reported and the loop keeps running until ctx is cancelled.
func (a *App) watch(ctx context.Context, compiler ports.Compiler, cfg *domain.Config) error {
	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	files := entryFiles(cfg)
	result, err := a.buildOnce(ctx, compiler, cfg, false)
	if err != nil {
		a.logger.Error(err)
	} else {
		files = append(files, result.WatchFiles...)
	}

	g, ctx := errgroup.WithContext(ctx)
	if err := w.Start(ctx, files); err != nil {
		return err
	}

	rebuild := make(chan watcher.Changes, 1)
	batcher := watcher.NewBatcher(watcher.DefaultQuietPeriod, watcher.DefaultMaxDelay, func(changes watcher.Changes) {
		select {
		case rebuild <- changes:
		default:
			// A rebuild is already pending and will pick up these changes.
		}
	})
	defer batcher.Stop()

	g.Go(func() error {
		for event := range w.Events() {
			batcher.Add(event)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("watching for changes")
		for {
			select {
			case <-ctx.Done():
				return nil
			case changes := <-rebuild:
				a.logger.Info(describeChanges(cfg.Root, changes) + ", rebuilding")
				result, err := a.buildOnce(ctx, compiler, cfg, false)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				if err := w.Add(result.WatchFiles); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

func entryFiles(cfg *domain.Config) []string {
	values := cfg.Input.Values()
	files := make([]string, 0, len(values))
	for _, file := range values {
		files = append(files, absolute(cfg.Root, file))
	}
	return files
}

func describeChanges(root string, changes watcher.Changes) string {
	if changes.Len() == 1 {
		if len(changes.Removed) == 1 {
			return relativeTo(root, changes.Removed[0]) + " removed"
		}
		return relativeTo(root, changes.Modified[0]) + " changed"
	}
	names := make([]string, 0, changes.Len())
	for _, path := range changes.Paths() {
		names = append(names, filepath.Base(path))
	}
	return fmt.Sprintf("%d files changed (%s)", changes.Len(), strings.Join(names, ", "))
}
