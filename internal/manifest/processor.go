package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/trly/unit-ops/internal/config"
	"github.com/trly/unit-ops/internal/execx"
	"github.com/trly/unit-ops/internal/fs"
	"github.com/trly/unit-ops/internal/log"
	"github.com/trly/unit-ops/internal/repository"
	"github.com/trly/unit-ops/internal/systemd"
)

// ApplyOptions controls a single Processor.Apply pass.
type ApplyOptions struct {
	// Prune removes tracked units that are absent from this pass. Callers
	// must only set it when the applied batch is the complete desired
	// state, otherwise units from other sources get swept away.
	Prune bool

	// RestartChanged restarts every unit whose file was rewritten, after
	// the daemon reload. Sync sets it so running units pick up new
	// definitions; apply leaves activation to its own flags.
	RestartChanged bool
}

// Processor applies built units to the system. For each unit it writes
// the file when the content differs from what is on disk, records the
// unit in the registry either way, and finishes the pass with a single
// daemon-reload when anything changed. Pruning is bounded by the
// registry: only files unit-ops wrote are ever removed.
type Processor struct {
	configProvider config.Provider
	logger         log.Logger
	runner         execx.Runner
	fsService      *fs.Service
	unitRepo       repository.Repository
	force          bool

	processedUnits map[string]bool
	changedUnits   []*BuiltUnit
}

// NewProcessor creates a Processor. With force set, unit files are
// rewritten even when their content is unchanged.
func NewProcessor(configProvider config.Provider, logger log.Logger, runner execx.Runner, unitRepo repository.Repository, force bool) *Processor {
	return &Processor{
		configProvider: configProvider,
		logger:         logger,
		runner:         runner,
		fsService:      fs.NewServiceWithLogger(configProvider, logger),
		unitRepo:       unitRepo,
		force:          force,
		processedUnits: make(map[string]bool),
	}
}

// WithExistingProcessedUnits seeds the processed-unit set so that a
// prune at the end of a multi-batch run treats units applied in earlier
// batches as live.
func (p *Processor) WithExistingProcessedUnits(units map[string]bool) *Processor {
	for name := range units {
		p.processedUnits[name] = true
	}
	return p
}

// GetProcessedUnits returns the names of every unit applied so far,
// including seeded ones.
func (p *Processor) GetProcessedUnits() map[string]bool {
	return p.processedUnits
}

// Apply runs one pass over the built units. Per-unit failures are
// logged and counted rather than aborting the pass; the returned error
// reports the count so callers can decide how loudly to fail.
func (p *Processor) Apply(ctx context.Context, units []*BuiltUnit, opts ApplyOptions) error {
	failed := 0
	for _, built := range units {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.applyUnit(built); err != nil {
			p.logger.Error("Failed to apply unit", "unit", built.Name(), "error", err)
			failed++
		}
	}

	pruned := 0
	if opts.Prune {
		pruned = p.pruneOrphans(ctx)
	}

	if len(p.changedUnits) > 0 || pruned > 0 {
		systemd.DaemonReload(ctx, p.configProvider, p.logger, p.runner)
	}
	if opts.RestartChanged {
		for _, built := range p.changedUnits {
			p.manager(built.Name(), built.Kind()).Restart(ctx)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d units failed to apply", failed, len(units))
	}
	return nil
}

func (p *Processor) applyUnit(built *BuiltUnit) error {
	p.processedUnits[built.Name()] = true

	content := built.Render()
	unitPath := p.fsService.GetUnitFilePath(built.Name())
	changed := p.fsService.HasUnitChanged(unitPath, content)

	if p.force || changed {
		if changed {
			p.logger.Debug("Unit content has changed", "unit", built.Name())
		} else {
			p.logger.Debug("Force updating unit", "unit", built.Name())
		}
		if !p.manager(built.Name(), built.Kind()).Create(content) {
			return fmt.Errorf("writing unit file for %s", built.Name())
		}
		if err := p.trackUnit(built, content); err != nil {
			return fmt.Errorf("tracking unit %s: %w", built.Name(), err)
		}
		p.changedUnits = append(p.changedUnits, built)
		return nil
	}

	// Unchanged files are still recorded so the registry reflects every
	// unit the current manifests own.
	if err := p.trackUnit(built, content); err != nil {
		return fmt.Errorf("tracking unit %s: %w", built.Name(), err)
	}
	return nil
}

func (p *Processor) trackUnit(built *BuiltUnit, content string) error {
	_, err := p.unitRepo.Create(&repository.Unit{
		Name:     built.Name(),
		Type:     built.Kind(),
		SHA1Hash: p.fsService.GetContentHash(content),
		UserMode: p.configProvider.GetConfig().UserMode,
	})
	return err
}

// pruneOrphans removes tracked units that were not part of this run:
// stop the unit, remove its file, drop the registry row. Rows are kept
// on removal failures so the next prune retries them.
func (p *Processor) pruneOrphans(ctx context.Context) int {
	tracked, err := p.unitRepo.FindAll()
	if err != nil {
		p.logger.Error("Failed to list tracked units", "error", err)
		return 0
	}

	pruned := 0
	for _, u := range tracked {
		if p.processedUnits[u.Name] {
			continue
		}
		p.logger.Info("Removing orphaned unit", "unit", u.Name)

		p.manager(u.Name, u.Type).Stop(ctx)

		unitPath := p.fsService.GetUnitFilePath(u.Name)
		if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
			p.logger.Error("Failed to remove unit file", "path", unitPath, "error", err)
			continue
		}
		if err := p.unitRepo.Delete(u.ID); err != nil {
			p.logger.Error("Failed to delete unit record", "unit", u.Name, "error", err)
			continue
		}
		pruned++
	}
	return pruned
}

func (p *Processor) manager(name, kind string) *systemd.Manager {
	if kind == KindTimer {
		return systemd.NewTimerManager(name, p.configProvider, p.logger, p.runner)
	}
	return systemd.NewServiceManager(name, p.configProvider, p.logger, p.runner)
}
