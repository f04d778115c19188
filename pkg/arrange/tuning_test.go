package arrange

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningMatchesComponentDefaults(t *testing.T) {
	tuning := DefaultTuning()

	if tuning.Spring.Iterations != 100 {
		t.Errorf("spring iterations = %d, want 100", tuning.Spring.Iterations)
	}
	if tuning.Spring.Damping != 0.85 {
		t.Errorf("damping = %v, want 0.85", tuning.Spring.Damping)
	}
	if tuning.Balance.SwirlGapFactor != 3.0 {
		t.Errorf("swirl gap factor = %v, want 3.0", tuning.Balance.SwirlGapFactor)
	}
	if tuning.Cluster.MaxIterations != 50 {
		t.Errorf("kmeans iterations = %d, want 50", tuning.Cluster.MaxIterations)
	}
	if tuning.Radius.ExpansionPower != 1.25 {
		t.Errorf("expansion power = %v, want 1.25", tuning.Radius.ExpansionPower)
	}
	if tuning.Path.MaxLength != 50 {
		t.Errorf("path cap = %d, want 50", tuning.Path.MaxLength)
	}
	if tuning.Crowd.StrictAttempts != 2000 || tuning.Crowd.RelaxedAttempts != 500 {
		t.Errorf("gaggle budgets = %d/%d, want 2000/500", tuning.Crowd.StrictAttempts, tuning.Crowd.RelaxedAttempts)
	}
}

func TestLoadTuningOverridesAndKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tuning.toml")
	content := `
[radius]
r_min = 50.0
r_max = 900.0

[path]
threshold = 0.7
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(file)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tuning.Radius.RMin != 50 || tuning.Radius.RMax != 900 {
		t.Errorf("radius = %v/%v, want 50/900", tuning.Radius.RMin, tuning.Radius.RMax)
	}
	if tuning.Path.Threshold != 0.7 {
		t.Errorf("threshold = %v, want 0.7", tuning.Path.Threshold)
	}
	// Untouched sections keep their defaults.
	if tuning.Spring.Iterations != 100 {
		t.Errorf("spring iterations = %d, want default 100", tuning.Spring.Iterations)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTuningHash(t *testing.T) {
	a := DefaultTuning()
	b := DefaultTuning()
	if a.Hash() != b.Hash() {
		t.Error("identical tunings should hash identically")
	}

	b.Radius.RMin = 99
	if a.Hash() == b.Hash() {
		t.Error("different tunings should hash differently")
	}
}
