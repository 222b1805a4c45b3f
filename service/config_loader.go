package service

import (
	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/checks"
	"github.com/hexlab-tools/hexvalidate/internal/config"
)

// ConfigurationLoaderImpl loads serialized configuration and resolves
// it into an executable pipeline
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig discovers configuration upward from the target
// directory, falling back to the built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(targetPath string) *config.Config {
	cfg, err := config.LoadConfigWithTarget("", targetPath)
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// BuildPipeline resolves the serialized stage definitions into the
// in-memory pipeline, constructing each referenced check through the
// registry. An unknown check id fails the whole load so typos surface
// before anything runs.
func (c *ConfigurationLoaderImpl) BuildPipeline(cfg *config.Config, deps checks.Deps) (*domain.ValidatorConfig, error) {
	stages := make([]domain.StageSpec, 0, len(cfg.Stages))
	for _, sc := range cfg.Stages {
		stage := domain.StageSpec{
			Name:       sc.Name,
			Parallel:   sc.Parallel,
			FailOnWarn: sc.FailOnWarn,
			Checks:     make([]domain.Check, 0, len(sc.Checks)),
		}
		for _, id := range sc.Checks {
			check, err := checks.Build(id, deps)
			if err != nil {
				return nil, err
			}
			stage.Checks = append(stage.Checks, check)
		}
		stages = append(stages, stage)
	}

	mode := domain.E2EMode(cfg.E2E)
	if !domain.ValidE2EMode(mode) {
		mode = domain.E2EModeOff
	}

	return &domain.ValidatorConfig{
		Stages:    stages,
		E2EMode:   mode,
		Reporters: cfg.Reporters,
	}, nil
}
