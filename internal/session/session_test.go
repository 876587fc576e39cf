package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/config"
	"github.com/shuna/azooKey/internal/host"
	"github.com/shuna/azooKey/internal/ime"
	"github.com/shuna/azooKey/internal/replace"
	"github.com/shuna/azooKey/internal/suggest"
)

type fakeEngine struct {
	responses   map[string]ime.Response
	predictions map[string][]candidate.Candidate
	err         error

	requests []string
	accepted []candidate.Candidate
	stops    int
}

func (e *fakeEngine) RequestCandidates(_ context.Context, req ime.Request) (ime.Response, error) {
	e.requests = append(e.requests, req.ConvertTarget)
	if e.err != nil {
		return ime.Response{}, e.err
	}
	resp := e.responses[req.ConvertTarget]
	if !req.Options.LiveConversion {
		resp.FirstClause = nil
	}
	return resp, nil
}

func (e *fakeEngine) RequestPredictions(_ context.Context, left candidate.Candidate, _ ime.Options) ([]candidate.Candidate, error) {
	return e.predictions[left.Text], nil
}

func (e *fakeEngine) RecordAcceptance(c candidate.Candidate) {
	e.accepted = append(e.accepted, c)
}

func (e *fakeEngine) Stop() { e.stops++ }

type captureSink struct {
	mu          sync.Mutex
	results     []candidate.ResultItem
	supplements []candidate.ResultItem
	predictions []candidate.Candidate
	publishes   int
}

func (s *captureSink) Publish(results, supplements []candidate.ResultItem, predictions []candidate.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishes++
	s.results = results
	if supplements != nil {
		s.supplements = supplements
	}
	s.predictions = predictions
}

func (s *captureSink) lastResults() []candidate.ResultItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

func resultTexts(items []candidate.ResultItem) []string {
	texts := make([]string, 0, len(items))
	for _, it := range items {
		texts = append(texts, it.DisplayText())
	}
	return texts
}

func surfaceCand(text string, chars int) candidate.Candidate {
	return candidate.Candidate{Text: text, Score: 100, Count: candidate.SurfaceCount(chars)}
}

func noLive() config.Settings {
	st := config.Default()
	st.LiveConversion = false
	return st
}

func TestEnterOnEmptyIsNoop(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	actions := s.Enter(context.Background(), true, true)
	if actions != nil {
		t.Errorf("Enter on empty returned actions %v", actions)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if sink.publishes != 0 {
		t.Errorf("publishes = %d, want 0", sink.publishes)
	}
	if doc.Text() != "" {
		t.Errorf("host text = %q, want empty", doc.Text())
	}
}

func TestInputComposesAndPublishes(t *testing.T) {
	eng := &fakeEngine{responses: map[string]ime.Response{
		"かんしゃ": {Main: []candidate.Candidate{surfaceCand("感謝", 4)}},
	}}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	for _, key := range []string{"k", "a", "n", "s", "h", "a"} {
		s.Input(ctx, key, composer.StyleRoman, false)
	}

	if s.State() != StateComposing {
		t.Fatalf("state = %v, want composing", s.State())
	}
	if got := s.ComposingText(); got != "かんしゃ" {
		t.Errorf("composing text = %q, want かんしゃ", got)
	}
	if doc.Text() != "かんしゃ" {
		t.Errorf("host text = %q, want かんしゃ", doc.Text())
	}
	texts := resultTexts(sink.lastResults())
	if len(texts) == 0 || texts[0] != "感謝" {
		t.Errorf("published results = %v, want 感謝 first", texts)
	}
}

func TestRawCandidateInjection(t *testing.T) {
	eng := &fakeEngine{responses: map[string]ime.Response{
		"hello": {Main: []candidate.Candidate{surfaceCand("ハロー", 5)}},
	}}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	s.Input(context.Background(), "hello", composer.StyleDirect, false)

	texts := resultTexts(sink.lastResults())
	found := -1
	for i, txt := range texts {
		if txt == "hello" {
			found = i
			break
		}
	}
	if found < 0 || found > 1 {
		t.Errorf("raw candidate index = %d in %v, want <= 1", found, texts)
	}
}

func TestEnterCommitsRawAndChainsPredictions(t *testing.T) {
	eng := &fakeEngine{
		predictions: map[string][]candidate.Candidate{
			"あい": {surfaceCand("あいしてる", 5)},
		},
	}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "a", composer.StyleRoman, false)
	s.Input(ctx, "i", composer.StyleRoman, false)
	s.Enter(ctx, true, true)

	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if doc.Text() != "あい" {
		t.Errorf("host text = %q, want あい", doc.Text())
	}
	if len(eng.accepted) != 1 || eng.accepted[0].Text != "あい" {
		t.Errorf("accepted = %v, want raw あい", eng.accepted)
	}
	if eng.stops == 0 {
		t.Error("engine Stop not signalled on completion")
	}
	if len(sink.predictions) != 1 || sink.predictions[0].Text != "あいしてる" {
		t.Errorf("predictions = %v, want あいしてる", sink.predictions)
	}
}

func TestPredictionChainInvalidatedByHostEdit(t *testing.T) {
	eng := &fakeEngine{
		predictions: map[string][]candidate.Candidate{
			"あ": {surfaceCand("あめ", 2)},
		},
	}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "a", composer.StyleRoman, false)
	s.Enter(ctx, true, true)
	if len(sink.predictions) == 0 {
		t.Fatal("no predictions after commit")
	}

	// An edit the session did not make invalidates the chain.
	doc.Insert("x")
	s.SetResult(ctx)
	if sink.predictions != nil {
		t.Errorf("predictions after external edit = %v, want nil", sink.predictions)
	}
}

func TestLiveClauseAutoCompleteTerminates(t *testing.T) {
	eng := &fakeEngine{responses: map[string]ime.Response{
		"きょうはいいてんき": {
			Main:        []candidate.Candidate{surfaceCand("今日はいい天気", 9)},
			FirstClause: []candidate.Candidate{surfaceCand("今日は", 4)},
		},
		"いいてんき": {
			Main: []candidate.Candidate{surfaceCand("いい天気", 5)},
		},
	}}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(config.Default()))

	s.Input(context.Background(), "きょうはいいてんき", composer.StyleDirect, false)

	if got := s.ComposingText(); got != "いいてんき" {
		t.Errorf("remaining composing text = %q, want いいてんき", got)
	}
	// Committed clause plus the overlay rendering of the remainder.
	if doc.Text() != "今日はいい天気" {
		t.Errorf("host text = %q, want 今日はいい天気", doc.Text())
	}
	if s.State() != StateComposing {
		t.Errorf("state = %v, want composing", s.State())
	}
}

func TestLiveClauseAutoCompleteByUnits(t *testing.T) {
	// Same round, with the first clause addressing whole input units
	// instead of surface characters.
	eng := &fakeEngine{responses: map[string]ime.Response{
		"きょうはいいてんき": {
			Main: []candidate.Candidate{surfaceCand("今日はいい天気", 9)},
			FirstClause: []candidate.Candidate{{
				Text:  "今日は",
				Score: 100,
				Count: candidate.UnitCount(1),
			}},
		},
		"いいてんき": {
			Main: []candidate.Candidate{surfaceCand("いい天気", 5)},
		},
	}}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(config.Default()))
	ctx := context.Background()

	s.Input(ctx, "きょうは", composer.StyleDirect, false)
	s.Input(ctx, "いいてんき", composer.StyleDirect, false)

	if got := s.ComposingText(); got != "いいてんき" {
		t.Errorf("remaining composing text = %q, want いいてんき", got)
	}
	if doc.Text() != "今日はいい天気" {
		t.Errorf("host text = %q, want 今日はいい天気", doc.Text())
	}
	if s.State() != StateComposing {
		t.Errorf("state = %v, want composing", s.State())
	}
}

func TestLiveClauseLoopStopsWithoutShrink(t *testing.T) {
	// A misbehaving engine keeps reporting a first clause that
	// consumes nothing. The round must still terminate.
	eng := &fakeEngine{responses: map[string]ime.Response{
		"あいう": {
			Main:        []candidate.Candidate{surfaceCand("あいう", 3)},
			FirstClause: []candidate.Candidate{surfaceCand("", 0)},
		},
	}}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(config.Default()))

	s.Input(context.Background(), "あいう", composer.StyleDirect, false)

	if got := s.ComposingText(); got != "あいう" {
		t.Errorf("composing text = %q, want あいう", got)
	}
}

func TestBoundaryTokenCommitsThenInserts(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "a", composer.StyleRoman, false)
	s.Input(ctx, "\n", composer.StyleRoman, false)

	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if doc.Text() != "あ\n" {
		t.Errorf("host text = %q, want あ\\n", doc.Text())
	}
}

func TestDeleteBackwardNegativeRedirects(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "あい", composer.StyleDirect, false)
	s.MoveCursor(ctx, -1)
	s.DeleteBackward(ctx, -1)

	if got := s.ComposingText(); got != "あ" {
		t.Errorf("composing text = %q, want あ", got)
	}
}

func TestDeleteEmptiesBufferBackToIdle(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "あ", composer.StyleDirect, false)
	s.DeleteBackward(ctx, 1)

	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if doc.Text() != "" {
		t.Errorf("host text = %q, want empty", doc.Text())
	}
	if eng.stops == 0 {
		t.Error("engine Stop not signalled when buffer emptied")
	}
}

func TestIdleDeletesGoToHost(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.NewFromText("abc")
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	s.DeleteBackward(context.Background(), 2)
	if doc.Text() != "a" {
		t.Errorf("host text = %q, want a", doc.Text())
	}
	if len(eng.requests) != 0 {
		t.Errorf("idle delete triggered %d conversion rounds", len(eng.requests))
	}
}

func TestSmoothDeleteIdle(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.NewFromText("abc。def")
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.SmoothDelete(ctx)
	if doc.Text() != "abc。" {
		t.Errorf("after first smooth delete: %q, want abc。", doc.Text())
	}
	// Adjacent to the delimiter the operation still makes progress.
	s.SmoothDelete(ctx)
	if doc.Text() != "abc" {
		t.Errorf("after second smooth delete: %q, want abc", doc.Text())
	}
}

func TestSmoothDeleteComposing(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "きょうは。いいてんき", composer.StyleDirect, false)
	s.SmoothDelete(ctx)

	if got := s.ComposingText(); got != "きょうは。" {
		t.Errorf("composing text = %q, want きょうは。", got)
	}
	if doc.Text() != "きょうは。" {
		t.Errorf("host text = %q, want きょうは。", doc.Text())
	}
}

func TestSelectionGuardRejectsLongText(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	long := strings.Repeat("あ", 500)
	if s.UserSelectedText(context.Background(), long, 200) {
		t.Error("500-character selection accepted with limit 200")
	}
	if s.State() == StateSelected {
		t.Error("entered Selected despite guard")
	}
}

func TestSelectionGuardRejectsURLsAndWhitespace(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	for _, text := range []string{
		"",
		"https://example.com/x",
		"www.example.com",
		"example.com",
		"二つ の語",
		"a\tb",
	} {
		if s.UserSelectedText(ctx, text, 200) {
			t.Errorf("UserSelectedText(%q) accepted, want rejected", text)
		}
	}
}

func TestUserSelectedTextReconversion(t *testing.T) {
	eng := &fakeEngine{responses: map[string]ime.Response{
		"かんしゃする": {Main: []candidate.Candidate{surfaceCand("感謝為る", 6)}},
	}}
	doc := host.NewFromText("感謝する")
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(config.Default()))
	s.RubyLog().Insert("感謝", "かんしゃ")
	ctx := context.Background()

	if !s.UserSelectedText(ctx, "感謝する", 200) {
		t.Fatal("selection rejected")
	}
	if s.State() != StateSelected {
		t.Fatalf("state = %v, want selected", s.State())
	}
	if got := s.ComposingText(); got != "かんしゃする" {
		t.Errorf("recovered reading = %q, want かんしゃする", got)
	}
	// The surface stays on screen until a candidate is accepted.
	if doc.Text() != "感謝する" {
		t.Errorf("host text = %q, want 感謝する", doc.Text())
	}

	s.Complete(ctx, surfaceCand("感謝為る", 6))
	if doc.Text() != "感謝為る" {
		t.Errorf("host text after accept = %q, want 感謝為る", doc.Text())
	}
	if s.State() != StateIdle {
		t.Errorf("state after accept = %v, want idle", s.State())
	}
}

func TestReplaceLastCharactersLongestMatch(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.NewFromText("xab")
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	s.ReplaceLastCharacters(context.Background(), replace.Table{"ab": "X", "b": "Y"})
	if doc.Text() != "xX" {
		t.Errorf("host text = %q, want xX", doc.Text())
	}
}

func TestChangeCharacterWhileComposing(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "つ", composer.StyleDirect, false)
	s.ChangeCharacter(ctx)

	if got := s.ComposingText(); got != "っ" {
		t.Errorf("composing text = %q, want っ", got)
	}
	if doc.Text() != "っ" {
		t.Errorf("host text = %q, want っ", doc.Text())
	}
}

func TestEngineErrorFallsBackToRaw(t *testing.T) {
	eng := &fakeEngine{err: errors.New("engine down")}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))

	s.Input(context.Background(), "あい", composer.StyleDirect, false)

	texts := resultTexts(sink.lastResults())
	if len(texts) != 1 || texts[0] != "あい" {
		t.Errorf("degraded results = %v, want single raw あい", texts)
	}
	if doc.Text() != "あい" {
		t.Errorf("host text = %q, want あい", doc.Text())
	}
}

type fixedSuggest struct {
	item candidate.ResultItem
}

func (p fixedSuggest) Suggest(_ context.Context, _ suggest.Snapshot) ([]candidate.ResultItem, error) {
	return []candidate.ResultItem{p.item}, nil
}

func TestSuggestSupplementsPublished(t *testing.T) {
	st := noLive()
	st.Suggest.Enabled = true
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(st),
		WithSuggestProvider(fixedSuggest{item: candidate.ReplacementItem("補完")}))

	s.Input(context.Background(), "あ", composer.StyleDirect, false)
	s.WaitSuggestions()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.supplements) != 1 || sink.supplements[0].DisplayText() != "補完" {
		t.Errorf("supplements = %v, want 補完", sink.supplements)
	}
}

type gatedSuggest struct {
	gate chan struct{}
	item candidate.ResultItem
}

func (p *gatedSuggest) Suggest(_ context.Context, _ suggest.Snapshot) ([]candidate.ResultItem, error) {
	<-p.gate
	return []candidate.ResultItem{p.item}, nil
}

func TestSuggestDropsStaleTask(t *testing.T) {
	st := noLive()
	st.Suggest.Enabled = true
	prov := &gatedSuggest{gate: make(chan struct{}), item: candidate.ReplacementItem("補完")}
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(st), WithSuggestProvider(prov))
	ctx := context.Background()

	s.Input(ctx, "あ", composer.StyleDirect, false)
	// The buffer is abandoned while the task is still in flight; its
	// dispatch-time snapshot no longer matches.
	s.StopComposition()
	close(prov.gate)
	s.WaitSuggestions()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.supplements != nil {
		t.Errorf("stale supplements published: %v", sink.supplements)
	}
}

func TestSuggestSurvivesRapidTyping(t *testing.T) {
	// Tasks overlap the session's own mutations; the staleness check
	// must only ever read the published snapshot, and the task whose
	// snapshot matches the final buffer still lands.
	st := noLive()
	st.Suggest.Enabled = true
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(st),
		WithSuggestProvider(fixedSuggest{item: candidate.ReplacementItem("補完")}))
	ctx := context.Background()

	for _, key := range []string{"k", "o", "n", "n", "i", "t", "i", "h", "a"} {
		s.Input(ctx, key, composer.StyleRoman, false)
	}
	s.WaitSuggestions()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.supplements) != 1 || sink.supplements[0].DisplayText() != "補完" {
		t.Errorf("supplements = %v, want 補完", sink.supplements)
	}
}

func TestStopCompositionAbandonsBuffer(t *testing.T) {
	eng := &fakeEngine{}
	doc := host.New()
	sink := &captureSink{}
	s := New(eng, doc, sink, config.NewStatic(noLive()))
	ctx := context.Background()

	s.Input(ctx, "あい", composer.StyleDirect, false)
	s.StopComposition()

	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
	// Typed text stays on screen.
	if doc.Text() != "あい" {
		t.Errorf("host text = %q, want あい", doc.Text())
	}
	if eng.stops == 0 {
		t.Error("engine Stop not signalled")
	}
}
