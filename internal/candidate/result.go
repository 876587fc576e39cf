package candidate

// ResultKind tags a ResultItem variant. The set is closed: the
// rendering collaborator switches over it exhaustively.
type ResultKind uint8

const (
	// KindConversion is a conversion candidate.
	KindConversion ResultKind = iota

	// KindReplacement is a text-replacement expansion.
	KindReplacement

	// KindSearchResult is a user-invoked replacement search hit.
	KindSearchResult

	// KindShortcutAction is a shortcut invoking a host-side action.
	KindShortcutAction
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case KindConversion:
		return "conversion"
	case KindReplacement:
		return "replacement"
	case KindSearchResult:
		return "search"
	case KindShortcutAction:
		return "shortcut"
	default:
		return "unknown"
	}
}

// ResultItem is one renderable entry of a published result list.
// Exactly the fields relevant to Kind are populated.
type ResultItem struct {
	Kind ResultKind

	// Candidate is set for KindConversion.
	Candidate Candidate

	// Text is the display payload for KindReplacement and
	// KindSearchResult.
	Text string

	// ActionID and Label describe a KindShortcutAction.
	ActionID string
	Label    string
}

// ConversionItem wraps a conversion candidate.
func ConversionItem(c Candidate) ResultItem {
	return ResultItem{Kind: KindConversion, Candidate: c}
}

// ReplacementItem wraps a replacement expansion.
func ReplacementItem(text string) ResultItem {
	return ResultItem{Kind: KindReplacement, Text: text}
}

// SearchResultItem wraps a replacement search hit.
func SearchResultItem(text string) ResultItem {
	return ResultItem{Kind: KindSearchResult, Text: text}
}

// ShortcutActionItem wraps a shortcut action.
func ShortcutActionItem(id, label string) ResultItem {
	return ResultItem{Kind: KindShortcutAction, ActionID: id, Label: label}
}

// DisplayText returns the text the renderer shows for the item.
func (r ResultItem) DisplayText() string {
	switch r.Kind {
	case KindConversion:
		return r.Candidate.Text
	case KindShortcutAction:
		return r.Label
	default:
		return r.Text
	}
}
