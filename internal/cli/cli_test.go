package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"arrange":    false,
		"preview":    false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestLoadTuningDefault(t *testing.T) {
	tuning, err := loadTuning("")
	if err != nil {
		t.Fatalf("loadTuning(\"\"): %v", err)
	}
	if tuning != arrange.DefaultTuning() {
		t.Error("empty path should yield default tuning")
	}
}

func TestLoadTuningFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(file, []byte("[crowd]\npitch = 99.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tuning, err := loadTuning(file)
	if err != nil {
		t.Fatalf("loadTuning: %v", err)
	}
	if tuning.Crowd.Pitch != 99 {
		t.Errorf("pitch = %v, want 99", tuning.Crowd.Pitch)
	}
}

func TestModeListModelNavigation(t *testing.T) {
	m := NewModeListModel(arrange.ModeWalkabout)
	if m.Cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.Cursor)
	}

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	next, _ := m.Update(down)
	m = next.(ModeListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	next, _ = m.Update(enter)
	m = next.(ModeListModel)
	if m.Selected != arrange.ModeHopscotch {
		t.Errorf("selected = %q, want hopscotch", m.Selected)
	}
}

func TestModeListModelStartsOnCurrent(t *testing.T) {
	m := NewModeListModel(arrange.ModeGaggle)
	if m.Entries[m.Cursor].Name != arrange.ModeGaggle {
		t.Errorf("cursor on %q, want gaggle", m.Entries[m.Cursor].Name)
	}
}

func TestModeListModelQuitWithoutSelection(t *testing.T) {
	m := NewModeListModel(arrange.ModeWalkabout)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ModeListModel)
	if m.Selected != "" {
		t.Errorf("selected = %q, want empty after quit", m.Selected)
	}
}
