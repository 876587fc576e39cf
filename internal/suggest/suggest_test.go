package suggest

import (
	"context"
	"sync"
	"testing"

	"github.com/shuna/azooKey/internal/candidate"
)

type stubProvider struct {
	items []candidate.ResultItem
	err   error

	// ready gates completion so tests can mutate the source first.
	ready chan struct{}
}

func (p *stubProvider) Suggest(ctx context.Context, snap Snapshot) ([]candidate.ResultItem, error) {
	if p.ready != nil {
		<-p.ready
	}
	return p.items, p.err
}

type stubSource struct {
	mu     sync.Mutex
	text   string
	cursor int
}

func (s *stubSource) ComposingSnapshot() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.cursor
}

func (s *stubSource) set(text string, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.cursor = cursor
}

func TestPublishOnMatchingSnapshot(t *testing.T) {
	src := &stubSource{text: "abc", cursor: 3}
	prov := &stubProvider{items: []candidate.ResultItem{candidate.ReplacementItem("abcdef")}}

	var mu sync.Mutex
	var published [][]candidate.ResultItem
	d := NewDispatcher(prov, src, func(items []candidate.ResultItem) {
		mu.Lock()
		published = append(published, items)
		mu.Unlock()
	})

	d.Dispatch(context.Background(), NewSnapshot("abc", 3))
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(published))
	}
}

func TestStaleTextDropped(t *testing.T) {
	src := &stubSource{text: "abc", cursor: 3}
	prov := &stubProvider{
		items: []candidate.ResultItem{candidate.ReplacementItem("x")},
		ready: make(chan struct{}),
	}

	var mu sync.Mutex
	count := 0
	d := NewDispatcher(prov, src, func([]candidate.ResultItem) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Dispatch(context.Background(), NewSnapshot("abc", 3))
	src.set("abcd", 4) // buffer moved while the task was in flight
	close(prov.ready)
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("stale result must be dropped, got %d publishes", count)
	}
}

func TestStaleCursorDropped(t *testing.T) {
	src := &stubSource{text: "abc", cursor: 3}
	prov := &stubProvider{
		items: []candidate.ResultItem{candidate.ReplacementItem("x")},
		ready: make(chan struct{}),
	}

	var mu sync.Mutex
	count := 0
	d := NewDispatcher(prov, src, func([]candidate.ResultItem) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Dispatch(context.Background(), NewSnapshot("abc", 3))
	src.set("abc", 2) // same text, moved cursor
	close(prov.ready)
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("cursor mismatch must drop the result, got %d publishes", count)
	}
}

func TestProviderErrorDropped(t *testing.T) {
	src := &stubSource{text: "abc", cursor: 3}
	prov := &stubProvider{err: context.DeadlineExceeded}

	count := 0
	d := NewDispatcher(prov, src, func([]candidate.ResultItem) { count++ })

	d.Dispatch(context.Background(), NewSnapshot("abc", 3))
	d.Wait()

	if count != 0 {
		t.Errorf("provider error must not publish, got %d", count)
	}
}

func TestSnapshotTokensDistinct(t *testing.T) {
	a := NewSnapshot("x", 0)
	b := NewSnapshot("x", 0)
	if a.Token == b.Token {
		t.Error("snapshot tokens must be distinct per dispatch")
	}
}
