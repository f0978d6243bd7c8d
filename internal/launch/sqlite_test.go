package launch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveSQLite_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	want, err := Load(ctx, Source{Path: sampleCSV})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "launches.db")
	n, err := SaveSQLite(ctx, path, want)
	if err != nil {
		t.Fatalf("SaveSQLite: %v", err)
	}
	if n != len(want) {
		t.Errorf("stored %d rows, want %d", n, len(want))
	}

	// Saving again replaces rather than appends.
	if n, err := SaveSQLite(ctx, path, want[:3]); err != nil || n != 3 {
		t.Fatalf("second SaveSQLite = %d, %v; want 3", n, err)
	}
	if _, err := SaveSQLite(ctx, path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(ctx, Source{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sqlite round trip (-want +got):\n%s", diff)
	}
}

func TestLoadAll_MixedSources(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "extra.sqlite")
	extra := []Record{{Site: "BOCA CHICA", Success: true, PayloadMassKg: 100, BoosterCategory: "SH"}}
	if _, err := SaveSQLite(ctx, path, extra); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadAll(ctx, []Source{{Path: sampleCSV}, {Path: path}})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if ds.Len() != 19 {
		t.Errorf("Len = %d, want 19", ds.Len())
	}
	sites := ds.Sites()
	if sites[len(sites)-1] != "BOCA CHICA" {
		t.Errorf("sites = %v", sites)
	}
}

func TestLoadSQLite_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := Load(ctx, Source{Path: filepath.Join(t.TempDir(), "missing.db")}); err == nil {
		t.Error("expected error for a missing database")
	}
	if _, err := Load(ctx, Source{Path: "launches.db.gz", Format: FormatSQLite}); err == nil {
		t.Error("expected error for a compressed database")
	}

	path := filepath.Join(t.TempDir(), "launches.db")
	if _, err := SaveSQLite(ctx, path, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ctx, Source{Path: path, Table: "nope"}); err == nil {
		t.Error("expected error for a missing table")
	}
}
