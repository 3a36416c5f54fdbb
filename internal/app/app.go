// Package app implements the application layer for lockstep.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/lockstep/internal/engine/checker"
	"go.trai.ch/lockstep/internal/engine/policy"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.LockfileStore
	installer    ports.Installer
	changes      ports.ChangeWriter
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       ports.Tracer
	checker      *checker.Checker
	resolver     *policy.Resolver
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.LockfileStore,
	installer ports.Installer,
	changes ports.ChangeWriter,
	watcher ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
	chk *checker.Checker,
	resolver *policy.Resolver,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		installer:    installer,
		changes:      changes,
		watcher:      watcher,
		logger:       log,
		tracer:       tracer,
		checker:      chk,
		resolver:     resolver,
		workDir:      ".",
	}
}

// WithWorkDir sets the directory the workspace file is searched from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// UpdateOptions are the caller's flags for an update.
type UpdateOptions struct {
	Full           bool
	Recheck        bool
	SkipInstall    bool
	NoLink         bool
	BypassPolicy   bool
	CollectLogFile string

	// OnPlan, when set, is called with the resolved options before the package
	// manager runs.
	OnPlan func(domain.InstallOptions)
}

// Update brings the lock file in line with the project manifests.
//
//nolint:cyclop // orchestration function
func (a *App) Update(ctx context.Context, uo UpdateOptions) (opts domain.InstallOptions, err error) {
	ctx, span := a.tracer.Start(ctx, "update")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	// 1. Load the workspace
	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return opts, zerr.Wrap(err, "failed to load configuration")
	}
	span.SetAttribute("package_manager", cfg.Backend())

	// 2. Reject unsupported flags before touching the lock file
	p := domain.UpdatePolicy{
		Full:           uo.Full,
		Recheck:        uo.Recheck,
		SkipInstall:    uo.SkipInstall,
		NoLink:         uo.NoLink,
		BypassPolicy:   uo.BypassPolicy,
		Backend:        cfg.Backend(),
		CollectLogFile: uo.CollectLogFile,
	}
	if err := a.resolver.Validate(p); err != nil {
		return opts, err
	}

	// 3. Snapshot the lock file
	before, err := a.snapshot(ctx, cfg)
	if err != nil {
		return opts, err
	}

	// 4. Check and resolve
	graph, err := domain.BuildGraph(cfg.Projects())
	if err != nil {
		return opts, err
	}
	if cfg.EnsureConsistentVersions() && !uo.BypassPolicy {
		if err := policy.CheckConsistentVersions(graph); err != nil {
			return opts, err
		}
	}

	report, err := a.check(ctx, graph, before)
	if err != nil {
		return opts, err
	}

	opts, err = a.resolver.Resolve(report, p, before.Digest())
	if err != nil {
		return opts, err
	}
	span.SetAttribute("mode", opts.Mode())
	if uo.OnPlan != nil {
		uo.OnPlan(opts)
	}

	// 5. Nothing to do
	if opts.Mode() == domain.ModeNoOp {
		return opts, nil
	}

	// 6. The options only hold for the snapshot they were computed against
	current, err := a.snapshot(ctx, cfg)
	if err != nil {
		return opts, err
	}
	if current.Digest() != opts.Snapshot() {
		return opts, domain.Raise(domain.ErrStaleSnapshot, "path", cfg.LockfilePath())
	}

	// 7. Run the package manager
	if err := a.install(ctx, cfg, opts); err != nil {
		return opts, err
	}

	// 8. Keep non-target entries untouched
	after, err := a.merge(ctx, cfg, before, opts)
	if err != nil {
		return opts, err
	}

	// 9. Verify
	final, err := a.check(ctx, graph, after)
	if err != nil {
		return opts, err
	}
	if !final.Empty() {
		a.logger.Warn(fmt.Sprintf("lock file is still inconsistent after the update: %s", final))
	}

	return opts, nil
}

// Check reports the discrepancies between the manifests and the lock file without
// changing anything.
func (a *App) Check(ctx context.Context) (report *domain.ConsistencyReport, err error) {
	ctx, span := a.tracer.Start(ctx, "check")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	lf, err := a.snapshot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	graph, err := domain.BuildGraph(cfg.Projects())
	if err != nil {
		return nil, err
	}
	if cfg.EnsureConsistentVersions() {
		if err := policy.CheckConsistentVersions(graph); err != nil {
			return nil, err
		}
	}

	return a.check(ctx, graph, lf)
}

// Watch runs Check once and then again every time the workspace file, the lock
// file or a project manifest changes, passing each report to onReport. It returns
// when ctx is done or onReport fails. Check failures after the first run are
// logged and watching continues.
func (a *App) Watch(ctx context.Context, onReport func(*domain.ConsistencyReport) error) error {
	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	changes, err := a.watcher.Watch(ctx, watchedPaths(cfg))
	if err != nil {
		return err
	}

	rep, err := a.Check(ctx)
	if err != nil {
		return err
	}
	if err := onReport(rep); err != nil {
		return err
	}

	for batch := range changes {
		a.logger.Debug(fmt.Sprintf("%d watched files changed, checking again", len(batch)))
		rep, err := a.Check(ctx)
		if err != nil {
			a.logger.Error(err)
			continue
		}
		if err := onReport(rep); err != nil {
			return err
		}
	}
	return nil
}

func watchedPaths(cfg *domain.Configuration) []string {
	paths := []string{
		filepath.Join(cfg.Root(), domain.WorkFileName),
		cfg.LockfilePath(),
	}
	for _, p := range cfg.Projects() {
		paths = append(paths, filepath.Join(cfg.Root(), filepath.FromSlash(p.Folder), domain.ManifestFileName))
	}
	return paths
}

// Change writes an empty change file for project. It returns the path written, or
// an empty string when the project is not published.
func (a *App) Change(ctx context.Context, project, email string) (path string, err error) {
	_, span := a.tracer.Start(ctx, "change")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to load configuration")
	}

	p, ok := cfg.Project(project)
	if !ok {
		return "", domain.Raise(domain.ErrProjectNotFound, "project", project)
	}
	if !p.ShouldPublish {
		a.logger.Info(fmt.Sprintf("%s is private, no change file needed", project))
		return "", nil
	}

	path, err = a.changes.Write(cfg.Root(), domain.NewEmptyChangeFile(p.Name, email))
	if err != nil {
		return "", err
	}
	a.logger.Info("created change file " + path)
	return path, nil
}

// snapshot reads the lock file. A missing lock file is an empty one.
func (a *App) snapshot(ctx context.Context, cfg *domain.Configuration) (*domain.Lockfile, error) {
	_, span := a.tracer.Start(ctx, "lockfile.snapshot")
	defer span.End()

	lf, err := a.store.Snapshot(cfg.LockfilePath())
	if errors.Is(err, domain.ErrLockfileNotFound) {
		a.logger.Debug("no lock file at " + cfg.LockfilePath() + ", starting from an empty one")
		return domain.EmptyLockfile(), nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("entries", len(lf.Entries))
	return lf, nil
}

func (a *App) check(
	ctx context.Context,
	graph *domain.DependencyGraph,
	lf *domain.Lockfile,
) (*domain.ConsistencyReport, error) {
	_, span := a.tracer.Start(ctx, "lockfile.check")
	defer span.End()

	report, err := a.checker.Check(graph, lf)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("discrepancies", report.Len())
	return report, nil
}

func (a *App) install(ctx context.Context, cfg *domain.Configuration, opts domain.InstallOptions) error {
	ctx, span := a.tracer.Start(ctx, "install",
		ports.WithAttribute("package_manager", cfg.Backend()),
		ports.WithAttribute("mode", opts.Mode()),
	)
	defer span.End()

	if err := a.installer.Install(ctx, cfg, opts); err != nil {
		span.RecordError(err)
		if !errors.Is(err, domain.ErrBackendFailed) {
			err = domain.Raise(domain.ErrBackendFailed,
				"package_manager", cfg.Backend().String(),
				"reason", err.Error(),
			)
		}
		return err
	}
	return nil
}

// merge re-reads the lock file written by the package manager. For restricted
// updates every entry that was not targeted is restored from before.
func (a *App) merge(
	ctx context.Context,
	cfg *domain.Configuration,
	before *domain.Lockfile,
	opts domain.InstallOptions,
) (*domain.Lockfile, error) {
	_, span := a.tracer.Start(ctx, "lockfile.merge")
	defer span.End()

	after, err := a.store.Snapshot(cfg.LockfilePath())
	if errors.Is(err, domain.ErrLockfileNotFound) {
		a.logger.Warn(fmt.Sprintf("%s did not write %s", cfg.Backend(), cfg.LockfilePath()))
		return domain.EmptyLockfile(), nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if !opts.Restricted() {
		return after, nil
	}

	merged := domain.MergeIncremental(before, after, opts.Targets())
	if merged.Digest() == after.Digest() {
		return after, nil
	}

	if err := a.store.Write(cfg.LockfilePath(), merged); err != nil {
		span.RecordError(err)
		return nil, err
	}
	a.logger.Debug(fmt.Sprintf("restored entries outside of %d targeted dependencies", len(opts.Targets())))
	return merged, nil
}
