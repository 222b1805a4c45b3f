package service

import (
	"path/filepath"
	"testing"

	"github.com/hexlab-tools/hexvalidate/internal/checks"
	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/hashcache"
	"github.com/hexlab-tools/hexvalidate/internal/testutil"
	"github.com/hexlab-tools/hexvalidate/internal/toolprobe"
)

func loaderDeps(t *testing.T) checks.Deps {
	t.Helper()
	return checks.Deps{
		Settings: config.DefaultConfig(),
		Cache:    hashcache.New(t.TempDir()),
		Prober:   toolprobe.NewProber(),
	}
}

func TestBuildPipeline_DefaultConfig(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()

	pipeline, err := loader.BuildPipeline(cfg, loaderDeps(t))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(cfg.Stages), len(pipeline.Stages))

	total := 0
	for i, stage := range pipeline.Stages {
		testutil.AssertEqual(t, cfg.Stages[i].Name, stage.Name)
		testutil.AssertEqual(t, cfg.Stages[i].Parallel, stage.Parallel)
		testutil.AssertEqual(t, len(cfg.Stages[i].Checks), len(stage.Checks))
		total += len(stage.Checks)
	}
	testutil.AssertEqual(t, 4, total)
}

func TestBuildPipeline_UnknownCheckID(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()
	cfg.Stages[0].Checks = append(cfg.Stages[0].Checks, "no-such-check")

	_, err := loader.BuildPipeline(cfg, loaderDeps(t))
	testutil.AssertError(t, err)
}

func TestBuildPipeline_InvalidE2EFallsBackToOff(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()
	cfg.E2E = "whenever"

	pipeline, err := loader.BuildPipeline(cfg, loaderDeps(t))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "off", string(pipeline.E2EMode))
}

func TestLoadConfig_BadPathWrapsError(t *testing.T) {
	loader := NewConfigurationLoader()
	_, err := loader.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.AssertError(t, err)
}

func TestLoadDefaultConfig_NoFileGivesDefaults(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := loader.LoadDefaultConfig(t.TempDir())
	testutil.AssertNotNil(t, cfg)
	testutil.AssertEqual(t, config.DefaultE2EMode, cfg.E2E)
}

func TestLoadDefaultConfig_PicksUpDiscoveredFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".hexvalidate.yaml", "e2e: always\nmax_workers: 2\n")

	loader := NewConfigurationLoader()
	cfg := loader.LoadDefaultConfig(dir)
	testutil.AssertEqual(t, "always", cfg.E2E)
	testutil.AssertEqual(t, 2, cfg.MaxWorkers)
}
