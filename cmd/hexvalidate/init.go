package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexlab-tools/hexvalidate/internal/config"
	"github.com/hexlab-tools/hexvalidate/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a hex-validate configuration file",
		Long: `Generate a documented configuration file with sensible defaults.

By default, creates .hexvalidate.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create .hexvalidate.yaml in current directory
  hex-validate init

  # Custom output path
  hex-validate init --config custom.yaml

  # Overwrite existing file
  hex-validate init --force

  # Generate smaller config with essential options only
  hex-validate init --minimal

  # Interactive setup wizard
  hex-validate init --interactive
  hex-validate init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	// The wizard assembles a Config value; the flag path renders the
	// commented template instead
	var wizardCfg *config.Config
	if interactive {
		var err error
		wizardCfg, configPath, err = runWizard(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	if wizardCfg != nil {
		if err := config.SaveConfig(wizardCfg, configPath); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	} else {
		content := config.GenerateTemplate(config.ProjectTypeGeneric, config.StrictnessStandard, minimal)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'hex-validate fast' before committing, or 'hex-validate ci' in your pipeline.")

	return nil
}

// pipelinePreset names the stage subsets the wizard offers, in order of
// how much of the default pipeline they keep
type pipelinePreset int

const (
	presetHygiene pipelinePreset = iota
	presetLinted
	presetFull
)

type wizardChoice struct {
	Label  string
	Detail string
}

var wizardTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}",
	Active:   "> {{ .Label | cyan }} ({{ .Detail | faint }})",
	Inactive: "  {{ .Label }} ({{ .Detail | faint }})",
	Selected: "{{ .Label | green }}",
}

// runWizard walks the user through the pipeline choices and returns the
// assembled configuration plus the chosen output path
func runWizard(defaultPath string) (*config.Config, string, error) {
	fmt.Println()
	fmt.Println("hex-validate pipeline setup")
	fmt.Println()

	presetIdx, err := wizardSelect("Which stages should the pipeline run?", []wizardChoice{
		{"Hygiene", "focused-test and debug-statement scans"},
		{"Hygiene + linter", "adds the external linter stage"},
		{"Everything", "adds the end-to-end gate"},
	})
	if err != nil {
		return nil, "", err
	}
	preset := pipelinePreset(presetIdx)

	strictnessIdx, err := wizardSelect("When should warnings fail the run?", []wizardChoice{
		{"Never", "warnings are reported but never block"},
		{"In the static stage", "the usual pre-commit posture"},
		{"In every stage", "treat all warnings as errors"},
	})
	if err != nil {
		return nil, "", err
	}
	strictness := []config.Strictness{
		config.StrictnessLenient,
		config.StrictnessStandard,
		config.StrictnessStrict,
	}[strictnessIdx]

	linterCommand := ""
	if preset >= presetLinted {
		prompt := promptui.Prompt{Label: "Linter command", Default: "eslint"}
		linterCommand, err = prompt.Run()
		if err != nil {
			return nil, "", fmt.Errorf("setup cancelled: %w", err)
		}
	}

	e2eMode := config.DefaultE2EMode
	if preset == presetFull {
		modeIdx, err := wizardSelect("When should the e2e suite run?", []wizardChoice{
			{"auto", "only under CI"},
			{"always", "on every invocation"},
			{"off", "keep the stage but leave it disabled"},
		})
		if err != nil {
			return nil, "", err
		}
		e2eMode = []string{"auto", "always", "off"}[modeIdx]
	}

	pathPrompt := promptui.Prompt{Label: "Config file path", Default: defaultPath}
	outputPath, err := pathPrompt.Run()
	if err != nil {
		return nil, "", fmt.Errorf("setup cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultPath
	}

	return wizardConfig(preset, strictness, e2eMode, linterCommand), outputPath, nil
}

func wizardSelect(label string, choices []wizardChoice) (int, error) {
	sel := promptui.Select{
		Label:     label,
		Items:     choices,
		Templates: wizardTemplates,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return 0, fmt.Errorf("setup cancelled: %w", err)
	}
	return idx, nil
}

// wizardConfig assembles a configuration from the wizard's answers,
// starting from the compiled-in defaults and trimming stages the
// preset leaves out
func wizardConfig(preset pipelinePreset, strictness config.Strictness, e2eMode, linterCommand string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Stages[0].FailOnWarn = strictness != config.StrictnessLenient

	switch preset {
	case presetHygiene:
		cfg.Stages = cfg.Stages[:1]
	case presetLinted:
		cfg.Stages = cfg.Stages[:2]
	}
	if preset >= presetLinted {
		cfg.Stages[1].FailOnWarn = strictness == config.StrictnessStrict
		if linterCommand != "" {
			cfg.Checks.Linter.Command = linterCommand
		}
	}
	if preset == presetFull {
		cfg.E2E = e2eMode
	}
	return cfg
}
