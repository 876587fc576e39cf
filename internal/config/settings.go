package config

import "github.com/shuna/azooKey/internal/ime"

// SuggestSettings configures the optional supplementary-suggestion
// feature.
type SuggestSettings struct {
	// Enabled turns supplementary suggestions on.
	Enabled bool `toml:"enabled"`

	// BaseURL is the OpenAI-compatible endpoint, local or remote.
	BaseURL string `toml:"base_url"`

	// Model is the model identifier at the endpoint.
	Model string `toml:"model"`

	// APIKey authenticates against the endpoint; empty for local
	// servers.
	APIKey string `toml:"api_key"`
}

// Settings is one immutable configuration snapshot. The session reads
// a fresh snapshot at the start of every public operation.
type Settings struct {
	// LiveConversion enables the speculative overlay.
	LiveConversion bool `toml:"live_conversion"`

	// KeyboardLanguage is the active keyboard language.
	KeyboardLanguage ime.KeyboardLanguage `toml:"-"`

	// Language is the TOML-facing language name ("ja_JP", "en_US",
	// "none"). Parsed into KeyboardLanguage after load.
	Language string `toml:"language"`

	// ResultCap caps the published candidate list.
	ResultCap int `toml:"result_cap"`

	// EnglishCandidate enables English candidates on the Japanese
	// keyboard.
	EnglishCandidate bool `toml:"english_candidate"`

	// Typography enables typographic candidates.
	Typography bool `toml:"typography"`

	// Learning is the learning-memory policy.
	Learning ime.LearningPolicy `toml:"-"`

	// LearningMode is the TOML-facing policy name ("enabled",
	// "disabled", "reset").
	LearningMode string `toml:"learning"`

	// Speculative configures speculative decoding.
	Speculative ime.Speculative `toml:"-"`

	// SpeculativeMode is the TOML-facing tier ("off", "light",
	// "full").
	SpeculativeMode string `toml:"speculative"`

	// SpeculativeStepBudget bounds inference steps when speculative
	// decoding is on.
	SpeculativeStepBudget int `toml:"speculative_step_budget"`

	// SmoothDelimiters is the delimiter set scanned by the smooth
	// delete and smart cursor operations.
	SmoothDelimiters string `toml:"smooth_delimiters"`

	// SelectionLengthLimit caps reconversion attempts on selected
	// text, in characters.
	SelectionLengthLimit int `toml:"selection_length_limit"`

	// Suggest configures supplementary suggestions.
	Suggest SuggestSettings `toml:"suggest"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		LiveConversion:       true,
		KeyboardLanguage:     ime.LanguageJapanese,
		Language:             "ja_JP",
		ResultCap:            30,
		Learning:             ime.LearningEnabled,
		LearningMode:         "enabled",
		SmoothDelimiters:     "。．！!？?\n",
		SelectionLengthLimit: 200,
	}
}

// Options projects the snapshot into the conversion-request bundle.
func (s Settings) Options() ime.Options {
	return ime.Options{
		ResultCap:                 s.ResultCap,
		KeyboardLanguage:          s.KeyboardLanguage,
		RequireJapanesePrediction: s.KeyboardLanguage == ime.LanguageJapanese,
		RequireEnglishPrediction:  s.KeyboardLanguage == ime.LanguageEnglish,
		LiveConversion:            s.LiveConversion,
		Typography:                s.Typography,
		EnglishCandidate:          s.EnglishCandidate,
		Learning:                  s.Learning,
		Speculative:               s.Speculative,
		Recognizers: []ime.RecognizerKind{
			ime.RecognizerNumeric,
			ime.RecognizerCalendar,
			ime.RecognizerEmail,
			ime.RecognizerTime,
			ime.RecognizerUnicodeEscape,
			ime.RecognizerVersion,
			ime.RecognizerTypography,
		},
	}
}

// resolve parses the TOML-facing string fields into their typed
// counterparts.
func (s *Settings) resolve() {
	switch s.Language {
	case "en_US":
		s.KeyboardLanguage = ime.LanguageEnglish
	case "none":
		s.KeyboardLanguage = ime.LanguageNone
	default:
		s.KeyboardLanguage = ime.LanguageJapanese
	}

	switch s.LearningMode {
	case "disabled":
		s.Learning = ime.LearningDisabled
	case "reset":
		s.Learning = ime.LearningReset
	default:
		s.Learning = ime.LearningEnabled
	}

	switch s.SpeculativeMode {
	case "light":
		s.Speculative = ime.Speculative{Enabled: true, Effort: ime.EffortLight, StepBudget: s.SpeculativeStepBudget}
	case "full":
		s.Speculative = ime.Speculative{Enabled: true, Effort: ime.EffortFull, StepBudget: s.SpeculativeStepBudget}
	default:
		s.Speculative = ime.Speculative{}
	}
}

// Provider hands out configuration snapshots.
type Provider interface {
	// Snapshot returns the current settings.
	Snapshot() Settings
}

// Static is a Provider over a fixed Settings value.
type Static struct {
	settings Settings
}

// NewStatic creates a static provider.
func NewStatic(s Settings) *Static {
	return &Static{settings: s}
}

// Snapshot implements Provider.
func (p *Static) Snapshot() Settings {
	return p.settings
}
