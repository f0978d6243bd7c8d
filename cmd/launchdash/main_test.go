package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleCSV = "../../testdata/launches.csv"

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"LAUNCHDASH_LISTEN", "LAUNCHDASH_DATA", "LAUNCHDASH_LOG_LEVEL", "LAUNCHDASH_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	resetFlags(rootCmd)
	cfg = nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSummary_CSV(t *testing.T) {
	out, err := run(t, "summary", "--data", sampleCSV, "--output", "csv")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{
		"Site,Name,Launches,Successes,Failures,Success Rate,Payload Range",
		"CCAFS LC-40,Cape Canaveral Launch Complex 40,8,2,6,25.0%",
		"KSC LC-39A,Kennedy Space Center Launch Complex 39A,4,3,1,75.0%",
		"Total,,18,8,10,44.4%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Launch Records by Site") {
		t.Error("CSV output should not carry a title")
	}
}

func TestSummary_Markdown(t *testing.T) {
	out, err := run(t, "summary", "-d", sampleCSV, "-o", "markdown")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "| VAFB SLC-4E") {
		t.Errorf("markdown row missing:\n%s", out)
	}
}

func TestSummary_BadOutput(t *testing.T) {
	if _, err := run(t, "summary", "--data", sampleCSV, "--output", "xml"); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestSites_Table(t *testing.T) {
	out, err := run(t, "sites", "--data", sampleCSV)
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	for _, want := range []string{"All Sites", "CCAFS SLC-40", "Vandenberg Space Force Base Space Launch Complex 4 East"} {
		if !strings.Contains(out, want) {
			t.Errorf("sites missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "CCAFS LC-40") > strings.Index(out, "VAFB SLC-4E") {
		t.Error("sites should keep dataset order")
	}
}

func TestNoDataset(t *testing.T) {
	_, err := run(t, "sites")
	if err == nil || !strings.Contains(err.Error(), "no dataset configured") {
		t.Fatalf("err = %v", err)
	}
}

func TestMissingDataFile(t *testing.T) {
	_, err := run(t, "summary", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil || !strings.Contains(err.Error(), "load dataset") {
		t.Fatalf("err = %v", err)
	}
}

func TestDataFromEnv(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv("LAUNCHDASH_DATA", sampleCSV)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"sites", "-o", "csv"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sites: %v", err)
	}
	if !strings.Contains(out.String(), "KSC LC-39A,Kennedy Space Center Launch Complex 39A") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestConfigFile(t *testing.T) {
	abs, err := filepath.Abs(sampleCSV)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "launchdash.yaml")
	body := "sources:\n  - path: " + abs + "\nsites:\n  KSC LC-39A: Pad 39A\nlog:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "sites", "--config", path, "-o", "csv")
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	if !strings.Contains(out, "KSC LC-39A,Pad 39A") {
		t.Errorf("site name override missing:\n%s", out)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := run(t, "sites", "--data", sampleCSV, "--log-level", "loud"); err == nil {
		t.Fatal("expected error for bad log level")
	}
}

func TestServe_ListenError(t *testing.T) {
	_, err := run(t, "serve", "--data", sampleCSV, "--listen", "not-an-address")
	if err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("err = %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q", out)
	}
}

func TestImport_ThenServeFromSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "launches.db")
	out, err := run(t, "import", "--data", sampleCSV, "--out", db)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 18 records") {
		t.Errorf("import output = %q", out)
	}

	out, err = run(t, "summary", "--data", db, "-o", "csv")
	if err != nil {
		t.Fatalf("summary from sqlite: %v", err)
	}
	if !strings.Contains(out, "Total,,18,8,10,44.4%") {
		t.Errorf("summary from sqlite:\n%s", out)
	}
}

func TestImport_RequiresOut(t *testing.T) {
	_, err := run(t, "import", "--data", sampleCSV)
	if err == nil || !strings.Contains(err.Error(), "--out") {
		t.Fatalf("err = %v", err)
	}
}
