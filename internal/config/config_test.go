package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shuna/azooKey/internal/ime"
)

func TestDefaults(t *testing.T) {
	s := Default()

	if !s.LiveConversion {
		t.Error("live conversion should default on")
	}
	if s.KeyboardLanguage != ime.LanguageJapanese {
		t.Errorf("expected Japanese default, got %v", s.KeyboardLanguage)
	}
	if s.SelectionLengthLimit != 200 {
		t.Errorf("expected selection limit 200, got %d", s.SelectionLengthLimit)
	}
	if s.SmoothDelimiters == "" {
		t.Error("expected a default delimiter set")
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s != Default() {
		t.Error("expected defaults for missing file")
	}
}

func TestLoadFileParsesAndResolves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "azookey.toml")
	doc := `
live_conversion = false
language = "en_US"
result_cap = 10
learning = "disabled"
speculative = "full"
speculative_step_budget = 8

[suggest]
enabled = true
base_url = "http://localhost:11434/v1"
model = "zenz-v2"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if s.LiveConversion {
		t.Error("live conversion should be off")
	}
	if s.KeyboardLanguage != ime.LanguageEnglish {
		t.Errorf("expected English, got %v", s.KeyboardLanguage)
	}
	if s.ResultCap != 10 {
		t.Errorf("expected cap 10, got %d", s.ResultCap)
	}
	if s.Learning != ime.LearningDisabled {
		t.Errorf("expected learning disabled, got %v", s.Learning)
	}
	if !s.Speculative.Enabled || s.Speculative.Effort != ime.EffortFull || s.Speculative.StepBudget != 8 {
		t.Errorf("unexpected speculative config: %+v", s.Speculative)
	}
	if !s.Suggest.Enabled || s.Suggest.Model != "zenz-v2" {
		t.Errorf("unexpected suggest config: %+v", s.Suggest)
	}
}

func TestLoadFileInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("==== not toml"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestOptionsProjection(t *testing.T) {
	s := Default()
	opts := s.Options()

	if !opts.RequireJapanesePrediction || opts.RequireEnglishPrediction {
		t.Error("Japanese keyboard should require Japanese predictions only")
	}
	if len(opts.Recognizers) == 0 {
		t.Error("expected recognizer list")
	}
	if opts.Recognizers[0] != ime.RecognizerNumeric {
		t.Error("numeric recognizer should lead the list")
	}
}

func TestStaticProvider(t *testing.T) {
	s := Default()
	s.ResultCap = 5

	if got := NewStatic(s).Snapshot().ResultCap; got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}
