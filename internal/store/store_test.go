package store

import (
	"testing"

	"github.com/anand-ps/reverie/internal/telemetry"
)

func TestStoreSaveAndList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	records := []telemetry.Record{
		{Time: 0, Particles: 3},
		{Time: 0.5, Particles: 3, Kinetic: 12.5},
	}
	stats := telemetry.Avalanches([]int{1, 2, 3})

	id, err := st.Save("sandpile", 120, 10.0, 42, records, stats)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	ids, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("expected [%s], got %v", id, ids)
	}

	meta, err := st.LoadMetadata(id)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if meta.Model != "sandpile" || meta.Seed != 42 || meta.Samples != 2 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Stats.Count != 3 {
		t.Errorf("stats not persisted: %+v", meta.Stats)
	}
}

func TestStoreBackToBackSavesGetDistinctIDs(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	a, err := st.Save("life", 120, 1.0, 1, nil, telemetry.AvalancheStats{})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	b, err := st.Save("life", 120, 1.0, 2, nil, telemetry.AvalancheStats{})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if a == b {
		t.Fatalf("consecutive saves collided on id %s", a)
	}

	ids, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 runs, got %v", ids)
	}
}

func TestStoreListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	ids, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no runs, got %v", ids)
	}
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadMetadata("absent_0"); err == nil {
		t.Error("expected error for missing run")
	}
}
