package ime

// KeyboardLanguage is the active keyboard language.
type KeyboardLanguage uint8

const (
	// LanguageJapanese is the Japanese keyboard.
	LanguageJapanese KeyboardLanguage = iota

	// LanguageEnglish is the English keyboard.
	LanguageEnglish

	// LanguageNone disables composition; input passes straight
	// through to the host document.
	LanguageNone
)

// String returns the language name.
func (l KeyboardLanguage) String() string {
	switch l {
	case LanguageJapanese:
		return "ja_JP"
	case LanguageEnglish:
		return "en_US"
	case LanguageNone:
		return "none"
	default:
		return "unknown"
	}
}

// LearningPolicy controls the engine's learning memory.
type LearningPolicy uint8

const (
	// LearningEnabled records acceptances and uses past learning.
	LearningEnabled LearningPolicy = iota

	// LearningDisabled uses past learning but records nothing new.
	LearningDisabled

	// LearningReset discards the learning memory.
	LearningReset
)

// SpeculativeEffort is the effort tier of speculative decoding,
// controlling model size.
type SpeculativeEffort uint8

const (
	// EffortLight favors latency.
	EffortLight SpeculativeEffort = iota

	// EffortFull favors quality.
	EffortFull
)

// Speculative configures the engine's speculative-decoding mode.
type Speculative struct {
	// Enabled turns speculative decoding on.
	Enabled bool

	// Effort selects the model-size tier.
	Effort SpeculativeEffort

	// StepBudget bounds inference steps per request.
	StepBudget int
}

// RecognizerKind identifies a special-format recognizer. The engine
// applies recognizers in the order listed in Options.
type RecognizerKind uint8

const (
	RecognizerNumeric RecognizerKind = iota
	RecognizerCalendar
	RecognizerEmail
	RecognizerTime
	RecognizerUnicodeEscape
	RecognizerVersion
	RecognizerTypography
)

// Options is the static configuration bundle sent with every
// conversion request. The prediction chain and ruby log are never
// sent; only the buffer and this bundle cross the engine boundary.
type Options struct {
	// ResultCap caps the number of main results.
	ResultCap int

	// KeyboardLanguage is the active keyboard language.
	KeyboardLanguage KeyboardLanguage

	// RequireJapanesePrediction and RequireEnglishPrediction flag
	// per-language prediction requirements.
	RequireJapanesePrediction bool
	RequireEnglishPrediction  bool

	// LiveConversion requests first-clause results for the
	// speculative overlay.
	LiveConversion bool

	// Typography enables typographic candidates (dashes, quotes).
	Typography bool

	// EnglishCandidate enables English candidates on the Japanese
	// keyboard.
	EnglishCandidate bool

	// Learning is the learning-memory policy.
	Learning LearningPolicy

	// Speculative configures speculative decoding.
	Speculative Speculative

	// Recognizers is the ordered list of special-format recognizers.
	Recognizers []RecognizerKind
}

// Request is one conversion request: the buffer portion up to the
// cursor plus static configuration.
type Request struct {
	// ConvertTarget is the composing text up to the cursor.
	ConvertTarget string

	// Options is the configuration bundle.
	Options Options
}
