package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/fwreport/internal/config"
	"github.com/breeze-rmm/fwreport/internal/logging"
	"github.com/breeze-rmm/fwreport/internal/wua"
)

func TestErrorLineIsSingleLineWithCause(t *testing.T) {
	err := errors.New("service unreachable")
	line := errorLine(err)

	if strings.Contains(line, "\n") {
		t.Fatalf("error line must be a single line: %q", line)
	}
	if !strings.HasPrefix(line, "Failed to query Windows Update for firmware updates: ") {
		t.Fatalf("missing static prefix: %q", line)
	}
	if !strings.HasSuffix(line, "service unreachable") {
		t.Fatalf("missing cause: %q", line)
	}
}

func TestErrorLineAddsHintForAccessDenied(t *testing.T) {
	err := &wua.ServiceError{Op: "create update session", HResult: 0x80070005, Err: errors.New("access is denied")}
	line := errorLine(err)
	if !strings.Contains(line, "elevated") {
		t.Fatalf("expected elevation hint: %q", line)
	}
}

func TestErrorLineUnsupportedPlatform(t *testing.T) {
	line := errorLine(wua.ErrUnsupportedPlatform)
	if !strings.Contains(line, "not available on this platform") {
		t.Fatalf("expected platform cause: %q", line)
	}
}

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "fwreport"}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "")
	cmd.Flags().StringVarP(&output, "output", "o", config.OutputText, "")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "")
	return cmd
}

func TestApplyFlagsOverridesOnlyChangedFlags(t *testing.T) {
	cmd := newFlagCommand()
	if err := cmd.ParseFlags([]string{"-v", "--output", "yaml"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.NoColor = true
	applyFlags(cmd, cfg)

	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug with --verbose", cfg.LogLevel)
	}
	if cfg.Output != config.OutputYAML {
		t.Fatalf("Output = %q, want yaml", cfg.Output)
	}
	if !cfg.NoColor {
		t.Fatal("unchanged --no-color flag must not override config")
	}
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	cmd := newFlagCommand()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Output = config.OutputJSON
	cfg.LogLevel = "info"
	applyFlags(cmd, cfg)

	if cfg.Output != config.OutputJSON || cfg.LogLevel != "info" {
		t.Fatalf("config overridden by unset flags: %+v", cfg)
	}
}

type unreachableService struct{ opened int }

func (s *unreachableService) Open() (wua.Session, error) {
	s.opened++
	return nil, &wua.ServiceError{Op: "create update session", Err: errors.New("service unreachable")}
}

func TestRunReportFailureWritesOneLineAndReturns(t *testing.T) {
	prevWD, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	svc := &unreachableService{}
	var out, errOut bytes.Buffer
	prevService, prevOut, prevErr, prevCfg := newService, stdout, stderr, cfgFile
	newService = func() wua.Service { return svc }
	stdout, stderr, cfgFile = &out, &errOut, ""
	t.Cleanup(func() {
		newService, stdout, stderr, cfgFile = prevService, prevOut, prevErr, prevCfg
		logging.Init("text", "warn", nil)
	})

	cmd := newFlagCommand()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}
	runReport(cmd)

	if svc.opened != 1 {
		t.Fatalf("Open called %d times, want 1", svc.opened)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should reach stdout on failure, got:\n%s", out.String())
	}
	lines := strings.Split(strings.TrimRight(errOut.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("want exactly one stderr line, got %d:\n%s", len(lines), errOut.String())
	}
	if !strings.HasPrefix(lines[0], "Failed to query Windows Update for firmware updates: ") ||
		!strings.Contains(lines[0], "service unreachable") {
		t.Fatalf("unexpected error line: %q", lines[0])
	}
}
