package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRunCommands_FlagsExist(t *testing.T) {
	expectedFlags := []string{"scope", "e2e", "report", "max-workers", "quiet", "verbose", "paths", "cwd"}

	commands := map[string]*cobra.Command{
		"fast": fastCmd(),
		"full": fullCmd(),
		"ci":   ciCmd(),
	}

	for name, cmd := range commands {
		for _, flagName := range expectedFlags {
			if cmd.Flags().Lookup(flagName) == nil {
				t.Errorf("%s: missing expected flag --%s", name, flagName)
			}
		}
	}
}

func TestRunCommands_ShortFlags(t *testing.T) {
	cmd := fastCmd()

	shortFlags := map[string]string{
		"q": "quiet",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestRunCommands_DefaultScopes(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		want string
	}{
		{"fast", fastCmd(), "staged"},
		{"full", fullCmd(), "full"},
		{"ci", ciCmd(), "full"},
	}

	for _, tt := range tests {
		flag := tt.cmd.Flags().Lookup("scope")
		if flag == nil {
			t.Fatalf("%s: scope flag not found", tt.name)
		}
		if flag.DefValue != tt.want {
			t.Errorf("%s: expected default scope %q, got %q", tt.name, tt.want, flag.DefValue)
		}
	}
}

func TestRunCommands_UnknownReportFormat(t *testing.T) {
	cmd := fastCmd()
	cmd.SetArgs([]string{"--report", "csv", "--cwd", t.TempDir()})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown report format")
	}
	exitErr, ok := err.(*CheckExitError)
	if !ok {
		t.Fatalf("expected CheckExitError, got %T", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("expected exit code 1, got %d", exitErr.Code)
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "validation failed"}
	if err.Error() != "validation failed" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	silent := &CheckExitError{Code: 1}
	if silent.Error() != "" {
		t.Errorf("expected empty message, got %q", silent.Error())
	}
}

func TestVersionCmd_VerboseFlag(t *testing.T) {
	cmd := versionCmd()
	if cmd.Flags().Lookup("verbose") == nil {
		t.Error("Missing expected flag: --verbose")
	}
	if cmd.Flags().ShorthandLookup("v") == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}
