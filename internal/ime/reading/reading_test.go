package reading

import (
	"context"
	"testing"

	"github.com/shuna/azooKey/internal/kana"
)

func TestRubyReconstruction(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("building reading service: %v", err)
	}

	ruby, err := s.Ruby(context.Background(), "感謝")
	if err != nil {
		t.Fatalf("ruby failed: %v", err)
	}
	if ruby != "かんしゃ" {
		t.Errorf("expected かんしゃ, got %q", ruby)
	}
}

func TestRubyOutputIsKana(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("building reading service: %v", err)
	}

	ruby, err := s.Ruby(context.Background(), "日本語")
	if err != nil {
		t.Fatalf("ruby failed: %v", err)
	}
	if !kana.IsKanaString(ruby) {
		t.Errorf("expected all-kana reading, got %q", ruby)
	}
}

func TestRubyCancelledContext(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("building reading service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Ruby(ctx, "感謝"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
