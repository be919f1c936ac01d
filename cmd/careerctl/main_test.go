package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"migrate": false, "sweep": false, "refresh": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("command %q not registered", name)
		}
	}
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, "migrate", "status")
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestRefreshRequiresIndustry(t *testing.T) {
	if _, err := execute(t, "refresh"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestSweepWithEmptyStore(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LLM_PROVIDER", "none")
	out, err := execute(t, "sweep")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if !strings.Contains(out, `"industries"`) {
		t.Fatalf("expected sweep report, got %q", out)
	}
}

func TestWriteOutputYAML(t *testing.T) {
	prev := outputFormat
	t.Cleanup(func() { outputFormat = prev })
	outputFormat = "yaml"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	report := struct {
		Industries int      `json:"industries"`
		Failed     []string `json:"failed"`
	}{Industries: 2, Failed: []string{"Retail"}}
	if err := writeOutput(cmd, report); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "industries: 2") || !strings.Contains(got, "- Retail") {
		t.Fatalf("unexpected yaml: %q", got)
	}
}

func TestWriteOutputRejectsUnknownFormat(t *testing.T) {
	prev := outputFormat
	t.Cleanup(func() { outputFormat = prev })
	outputFormat = "xml"
	if err := writeOutput(&cobra.Command{}, 1); err == nil {
		t.Fatalf("expected format error")
	}
}
