// Package dictengine implements a reference ConversionEngine over a
// JSON fixture dictionary. It exists for the demo binary and tests;
// the production engine lives behind the same interface elsewhere.
//
// The fixture format is a single JSON document:
//
//	{
//	  "entries": [
//	    {"ruby": "かんしゃ", "word": "感謝", "score": -500, "tag": "名詞"}
//	  ],
//	  "predictions": {
//	    "感謝": ["します", "する"]
//	  }
//	}
//
// Conversion segments the convert target by greedy longest-prefix
// lookup over the ruby index. When the leading segment is shorter than
// the whole target, its candidates are reported as first-clause
// results for the live-conversion overlay.
package dictengine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/ime"
	"github.com/shuna/azooKey/internal/kana"
)

// ErrInvalidFixture indicates the fixture document is not valid JSON.
var ErrInvalidFixture = errors.New("dictengine: invalid fixture")

type dictEntry struct {
	word  string
	score int
	tag   string
}

// Engine is a fixture-backed conversion engine. Safe for concurrent
// reads; acceptance recording is internally synchronized.
type Engine struct {
	mu sync.Mutex

	// byRuby indexes entries by reading.
	byRuby map[string][]dictEntry

	// predictions maps a committed word to continuation words.
	predictions map[string][]string

	// accepted counts acceptances per word for score boosting.
	accepted map[string]int

	// maxRubyLen bounds the longest-prefix scan, in runes.
	maxRubyLen int
}

// Load parses a fixture document into an engine.
func Load(data []byte) (*Engine, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidFixture
	}
	doc := gjson.ParseBytes(data)

	e := &Engine{
		byRuby:      make(map[string][]dictEntry),
		predictions: make(map[string][]string),
		accepted:    make(map[string]int),
	}

	doc.Get("entries").ForEach(func(_, v gjson.Result) bool {
		ruby := kana.ToHiragana(kana.Normalize(v.Get("ruby").String()))
		word := v.Get("word").String()
		if ruby == "" || word == "" {
			return true
		}
		e.byRuby[ruby] = append(e.byRuby[ruby], dictEntry{
			word:  word,
			score: int(v.Get("score").Int()),
			tag:   v.Get("tag").String(),
		})
		if n := len([]rune(ruby)); n > e.maxRubyLen {
			e.maxRubyLen = n
		}
		return true
	})

	doc.Get("predictions").ForEach(func(k, v gjson.Result) bool {
		var words []string
		v.ForEach(func(_, w gjson.Result) bool {
			words = append(words, w.String())
			return true
		})
		e.predictions[k.String()] = words
		return true
	})

	return e, nil
}

// RequestCandidates implements ime.ConversionEngine.
func (e *Engine) RequestCandidates(ctx context.Context, req ime.Request) (ime.Response, error) {
	if err := ctx.Err(); err != nil {
		return ime.Response{}, err
	}

	target := []rune(req.ConvertTarget)
	if len(target) == 0 {
		return ime.Response{}, nil
	}

	var resp ime.Response

	// Whole-target matches rank first.
	whole := e.lookup(string(target), candidate.SurfaceCount(len(target)))
	resp.Main = append(resp.Main, whole...)

	// Greedy longest-prefix segmentation yields a joined candidate
	// and, for live conversion, first-clause results.
	segWords, segScore, firstLen := e.segment(target)
	if firstLen > 0 && firstLen < len(target) {
		if len(segWords) > 0 {
			resp.Main = append(resp.Main, candidate.Candidate{
				Text:  strings.Join(segWords, ""),
				Score: segScore,
				Count: candidate.SurfaceCount(len(target)),
				Tag:   "連結",
			})
		}
		if req.Options.LiveConversion {
			resp.FirstClause = e.lookup(string(target[:firstLen]), candidate.SurfaceCount(firstLen))
		}
	}

	resp.Main = append(resp.Main, e.recognize(req)...)

	sort.SliceStable(resp.Main, func(i, j int) bool {
		return resp.Main[i].Score > resp.Main[j].Score
	})
	if limit := req.Options.ResultCap; limit > 0 && len(resp.Main) > limit {
		resp.Main = resp.Main[:limit]
	}

	return resp, nil
}

// lookup returns candidates for an exact ruby, acceptance-boosted.
func (e *Engine) lookup(ruby string, count candidate.ComposingCount) []candidate.Candidate {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []candidate.Candidate
	for _, d := range e.byRuby[ruby] {
		out = append(out, candidate.Candidate{
			Text:    d.word,
			Score:   d.score + 100*e.accepted[d.word],
			Count:   count,
			Tag:     d.tag,
			Entries: []candidate.DictEntry{{Word: d.word, Ruby: ruby}},
		})
	}
	return out
}

// segment greedily consumes the longest known ruby prefix repeatedly.
// It returns the per-segment best words, a combined score, and the
// rune length of the first segment (0 when nothing matched).
func (e *Engine) segment(target []rune) (words []string, score, firstLen int) {
	i := 0
	for i < len(target) {
		matched := 0
		max := e.maxRubyLen
		if rem := len(target) - i; rem < max {
			max = rem
		}
		for l := max; l >= 1; l-- {
			cands := e.lookup(string(target[i:i+l]), candidate.SurfaceCount(l))
			if len(cands) == 0 {
				continue
			}
			best := cands[0]
			for _, c := range cands[1:] {
				if c.Score > best.Score {
					best = c
				}
			}
			words = append(words, best.Text)
			score += best.Score
			matched = l
			break
		}
		if matched == 0 {
			// Unknown character passes through.
			words = append(words, string(target[i]))
			score += candidate.RawScore
			matched = 1
		}
		if firstLen == 0 {
			firstLen = matched
		}
		i += matched
	}
	return words, score, firstLen
}

// recognize applies the request's special-format recognizers in order.
// Only the numeric recognizer is implemented here; the others belong
// to the production engine.
func (e *Engine) recognize(req ime.Request) []candidate.Candidate {
	var out []candidate.Candidate
	for _, r := range req.Options.Recognizers {
		if r != ime.RecognizerNumeric {
			continue
		}
		if n, ok := readNumeric(req.ConvertTarget); ok {
			out = append(out, candidate.Candidate{
				Text:  n,
				Score: -2000,
				Count: candidate.SurfaceCount(len([]rune(req.ConvertTarget))),
				Tag:   "数",
			})
		}
	}
	return out
}

// readNumeric converts fullwidth digit sequences to halfwidth.
func readNumeric(s string) (string, bool) {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= '０' && r <= '９':
			sb.WriteRune(r - '０' + '0')
		default:
			return "", false
		}
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

// RequestPredictions implements ime.ConversionEngine.
func (e *Engine) RequestPredictions(ctx context.Context, left candidate.Candidate, opts ime.Options) ([]candidate.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	words := e.predictions[left.Text]
	e.mu.Unlock()

	out := make([]candidate.Candidate, 0, len(words))
	for i, w := range words {
		out = append(out, candidate.Candidate{
			Text:  w,
			Score: -100 * (i + 1),
			Count: candidate.SurfaceCount(0),
			Tag:   "予測",
		})
	}
	return out, nil
}

// RecordAcceptance implements ime.ConversionEngine.
func (e *Engine) RecordAcceptance(c candidate.Candidate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accepted[c.Text]++
}

// Stop implements ime.ConversionEngine.
func (e *Engine) Stop() {}
