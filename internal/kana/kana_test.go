package kana

import "testing"

func TestToHiragana(t *testing.T) {
	if got := ToHiragana("カンシャ"); got != "かんしゃ" {
		t.Errorf("expected かんしゃ, got %q", got)
	}
}

func TestToKatakana(t *testing.T) {
	if got := ToKatakana("かんしゃ"); got != "カンシャ" {
		t.Errorf("expected カンシャ, got %q", got)
	}
}

func TestToHiraganaPassthrough(t *testing.T) {
	if got := ToHiragana("感謝ABC"); got != "感謝ABC" {
		t.Errorf("non-katakana should pass through, got %q", got)
	}
}

func TestIsKanaString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"する", true},
		{"スル", true},
		{"ラーメン", true},
		{"感謝", false},
		{"すacる", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsKanaString(tt.in); got != tt.want {
			t.Errorf("IsKanaString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWidthFold(t *testing.T) {
	// Fullwidth Latin folds to halfwidth; halfwidth katakana folds to
	// fullwidth.
	if got := Normalize("ＡＢＣ"); got != "ABC" {
		t.Errorf("expected ABC, got %q", got)
	}
	if got := Normalize("ｶﾝｼｬ"); got != "カンシャ" {
		t.Errorf("expected カンシャ, got %q", got)
	}
}

func TestContainsLatin(t *testing.T) {
	if !ContainsLatin("hello") {
		t.Error("expected Latin detection for hello")
	}
	if !ContainsLatin("感謝ｈ") {
		t.Error("expected Latin detection for fullwidth h")
	}
	if ContainsLatin("かんしゃ感謝") {
		t.Error("did not expect Latin detection for kana+kanji")
	}
}

func TestCountGraphemes(t *testing.T) {
	if got := CountGraphemes("かんしゃ"); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
	if got := CountGraphemes(""); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
