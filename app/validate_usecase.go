package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/checks"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/constants"
	"github.com/hexlab-tools/hexvalidate/internal/execx"
	"github.com/hexlab-tools/hexvalidate/internal/gitx"
	"github.com/hexlab-tools/hexvalidate/internal/hashcache"
	"github.com/hexlab-tools/hexvalidate/internal/toolprobe"
	"github.com/hexlab-tools/hexvalidate/internal/workspace"
	"github.com/hexlab-tools/hexvalidate/service"
)

// ValidateResult holds the outcome of one pipeline run
type ValidateResult struct {
	OK       bool
	Summary  *service.Summary
	Results  []*domain.CheckResult
	Duration time.Duration
}

// ValidateUseCase orchestrates a whole validation run: workspace
// discovery, configuration, scoping, scheduling, aggregation, and
// reporting
type ValidateUseCase struct {
	loader       *service.ConfigurationLoaderImpl
	progress     domain.ProgressManager
	outputWriter io.Writer
}

// NewValidateUseCase creates a new validate use case writing its
// report to writer
func NewValidateUseCase(pm domain.ProgressManager, writer io.Writer) *ValidateUseCase {
	if pm == nil {
		pm = &service.NoOpProgressManager{}
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &ValidateUseCase{
		loader:       service.NewConfigurationLoader(),
		progress:     pm,
		outputWriter: writer,
	}
}

// Execute runs the pipeline described by the options and writes the
// report. It returns the run outcome; an error means the run could not
// start at all.
func (uc *ValidateUseCase) Execute(ctx context.Context, opts domain.RunOptions) (*ValidateResult, error) {
	startTime := time.Now()

	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, domain.NewInvalidInputError("cannot determine working directory", err)
		}
		cwd = wd
	}
	root := workspace.FindRoot(cwd)

	cfg := uc.loader.LoadDefaultConfig(root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := checks.Deps{
		Settings: cfg,
		Cache:    hashcache.New(root),
		Prober:   toolprobe.NewProber(),
	}
	pipeline, err := uc.loader.BuildPipeline(cfg, deps)
	if err != nil {
		return nil, err
	}
	if opts.E2E != "" {
		if !domain.ValidE2EMode(opts.E2E) {
			return nil, domain.NewInvalidInputError("unknown e2e mode: "+string(opts.E2E), nil)
		}
		pipeline.E2EMode = opts.E2E
	}

	cc, err := uc.buildContext(ctx, root, pipeline, opts)
	if err != nil {
		return nil, err
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = cfg.MaxWorkers
	}
	scheduler := service.NewStageSchedulerWithProgress(maxWorkers, uc.progress)
	ok, results := scheduler.Run(ctx, cc, pipeline.Stages)
	summary := service.Aggregate(results)

	result := &ValidateResult{
		OK:       ok,
		Summary:  summary,
		Results:  results,
		Duration: time.Since(startTime),
	}
	if err := uc.report(result, pipeline, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// buildContext assembles the shared read-only context. The file lists
// are resolved up front so concurrently running checks never touch git
// or walk the tree themselves.
func (uc *ValidateUseCase) buildContext(ctx context.Context, root string, pipeline *domain.ValidatorConfig, opts domain.RunOptions) (*domain.CheckContext, error) {
	scope := opts.Scope
	if scope == "" {
		scope = domain.ScopeFull
	}
	if !domain.ValidScope(scope) {
		return nil, domain.NewInvalidInputError("unknown scope: "+string(scope), nil)
	}

	helper := NewFileHelper(root)
	cc := &domain.CheckContext{
		Cwd:    root,
		CI:     opts.CI || execx.Truthy(os.Getenv(constants.EnvCI)),
		Scope:  scope,
		Env:    os.Environ(),
		Config: pipeline,
	}

	if len(opts.Paths) > 0 {
		files, err := helper.CollectFiles(opts.Paths)
		if err != nil {
			return nil, domain.NewFileNotFoundError("cannot resolve requested paths", err)
		}
		cc.TargetFiles = files
		return cc, nil
	}

	switch scope {
	case domain.ScopeStaged:
		cc.StagedFiles = gitx.StagedFiles(ctx, root)
	case domain.ScopeChanged:
		cc.ChangedFiles = gitx.ChangedFiles(ctx, root)
	default:
		files, err := helper.CollectFiles(nil)
		if err != nil {
			return nil, domain.NewFileNotFoundError("cannot walk repository tree", err)
		}
		cc.TreeFiles = files
	}
	return cc, nil
}

// report renders the summary in the selected format
func (uc *ValidateUseCase) report(result *ValidateResult, pipeline *domain.ValidatorConfig, opts domain.RunOptions) error {
	format := opts.Report
	if format == "" {
		format = domain.ReportSummary
		if len(pipeline.Reporters) > 0 {
			format = domain.ReportFormat(pipeline.Reporters[0])
		}
	}

	var err error
	switch format {
	case domain.ReportSummary:
		err = service.NewTerminalFormatter(opts.Quiet, opts.Verbose).Write(uc.outputWriter, result.Summary, result.Results)
	case domain.ReportJSON:
		err = service.NewJSONFormatter().Write(uc.outputWriter, result.Summary, result.Results)
	case domain.ReportJUnit:
		err = service.NewJUnitFormatter().Write(uc.outputWriter, result.Summary, result.Results)
	default:
		return domain.NewInvalidInputError("unknown report format: "+string(format), nil)
	}
	if err != nil {
		return domain.NewReportError("failed to write report", err)
	}
	return nil
}

// LoadDefaultSettings exposes the discovered configuration for
// commands that only need settings, not a full run
func LoadDefaultSettings(targetPath string) *config.Config {
	return service.NewConfigurationLoader().LoadDefaultConfig(targetPath)
}
