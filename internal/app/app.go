// Package app wires the composing-session core to an interactive
// terminal: an in-memory host document, the fixture-backed conversion
// engine, and a tcell screen showing the document, the candidate list,
// and post-composition predictions.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/shuna/azooKey/internal/candidate"
	"github.com/shuna/azooKey/internal/composer"
	"github.com/shuna/azooKey/internal/config"
	"github.com/shuna/azooKey/internal/host"
	"github.com/shuna/azooKey/internal/ime/dictengine"
	"github.com/shuna/azooKey/internal/ime/reading"
	"github.com/shuna/azooKey/internal/replace"
	"github.com/shuna/azooKey/internal/session"
	"github.com/shuna/azooKey/internal/suggest"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. Empty
	// runs on defaults.
	ConfigPath string

	// DictPath is the path to the fixture dictionary. Empty uses a
	// small built-in dictionary.
	DictPath string

	// ReplacePath is the path to a Lua replacement-table script.
	ReplacePath string

	// Reading enables the morphological reading fallback for
	// reconversion of text the ruby log has not seen.
	Reading bool

	// LogPath is the log file. Empty discards logs unless Debug is
	// set, which falls back to stderr.
	LogPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Debug enables debug logging.
	Debug bool
}

// Application owns the session, its collaborators, and the terminal
// lifecycle.
type Application struct {
	logger  *Logger
	logFile *os.File

	provider config.Provider
	fileProv *config.FileProvider

	engine  *dictengine.Engine
	doc     *host.Document
	session *session.Session
	screen  tcell.Screen

	// Published conversion state. The suggest task publishes from its
	// own goroutine, so access is synchronized.
	mu          sync.Mutex
	results     []candidate.ResultItem
	supplements []candidate.ResultItem
	predictions []candidate.Candidate
	selection   int

	running  atomic.Bool
	shutdown sync.Once
}

// New creates an application from options.
func New(opts Options) (*Application, error) {
	a := &Application{doc: host.New()}

	if err := a.initLogging(opts); err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		fp, err := config.NewFileProvider(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("%w: config %s: %v", ErrInitialization, opts.ConfigPath, err)
		}
		log := a.logger.WithComponent("config")
		fp.OnChange(func(config.Settings) {
			log.Info("configuration reloaded")
		})
		if err := fp.Watch(); err != nil {
			log.Warn("config watch unavailable: %v", err)
		}
		a.fileProv = fp
		a.provider = fp
	} else {
		a.provider = config.NewStatic(config.Default())
	}

	data := []byte(builtinDict)
	if opts.DictPath != "" {
		b, err := os.ReadFile(opts.DictPath)
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary %s: %v", ErrInitialization, opts.DictPath, err)
		}
		data = b
	}
	eng, err := dictengine.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	a.engine = eng

	var sessOpts []session.Option
	if opts.Reading {
		svc, err := reading.New()
		if err != nil {
			a.logger.WithComponent("reading").Warn("fallback unavailable: %v", err)
		} else {
			sessOpts = append(sessOpts, session.WithRubyReader(svc))
		}
	}
	if opts.ReplacePath != "" {
		table, err := replace.LoadLuaTable(opts.ReplacePath)
		if err != nil {
			return nil, fmt.Errorf("%w: replacements %s: %v", ErrInitialization, opts.ReplacePath, err)
		}
		sessOpts = append(sessOpts, session.WithReplacer(replace.NewStatic(table)))
	}
	if st := a.provider.Snapshot(); st.Suggest.Enabled {
		sessOpts = append(sessOpts, session.WithSuggestProvider(suggest.NewLLMProvider(suggest.LLMConfig{
			BaseURL:     st.Suggest.BaseURL,
			APIKey:      st.Suggest.APIKey,
			Model:       st.Suggest.Model,
			Speculative: st.Speculative,
		})))
		a.logger.WithComponent("suggest").Info("enabled, model=%s", st.Suggest.Model)
	}

	a.session = session.New(eng, a.doc, a, a.provider, sessOpts...)
	return a, nil
}

func (a *Application) initLogging(opts Options) error {
	level := ParseLogLevel(opts.LogLevel)
	if opts.Debug {
		level = LogLevelDebug
	}

	var out io.Writer
	switch {
	case opts.LogPath != "":
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("%w: log file %s: %v", ErrInitialization, opts.LogPath, err)
		}
		a.logFile = f
		out = f
	case opts.Debug:
		out = os.Stderr
	default:
		out = io.Discard
	}

	a.logger = NewLogger(level, out)
	return nil
}

// Publish implements ime.ResultSink. It may be called from the
// suggest task's goroutine; the UI is woken through the event queue.
func (a *Application) Publish(results, supplements []candidate.ResultItem, predictions []candidate.Candidate) {
	a.mu.Lock()
	if supplements != nil && results == nil {
		// Supplement-only publish from the suggest task; the main
		// list stays as it is.
		a.supplements = supplements
	} else {
		a.results = results
		a.supplements = supplements
		a.predictions = predictions
		a.selection = 0
	}
	screen := a.screen
	a.mu.Unlock()

	if screen != nil && a.running.Load() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Run enters the terminal event loop. It returns ErrQuit on a normal
// quit request.
func (a *Application) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	a.mu.Lock()
	a.screen = screen
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.screen = nil
		a.mu.Unlock()
		screen.Fini()
	}()

	a.logger.Info("session started")
	ctx := context.Background()

	for {
		a.draw(screen)
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if err := a.handleKey(ctx, ev); err != nil {
				a.logger.Info("exiting: %v", err)
				return err
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			// Redraw request from a background publish.
		case nil:
			return ErrQuit
		}
	}
}

// Shutdown releases resources. Safe to call more than once and
// concurrently with Run.
func (a *Application) Shutdown() {
	a.shutdown.Do(func() {
		a.session.WaitSuggestions()
		if a.fileProv != nil {
			_ = a.fileProv.Close()
		}
		a.mu.Lock()
		screen := a.screen
		a.mu.Unlock()
		if screen != nil {
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		a.logger.Info("shutdown complete")
		if a.logFile != nil {
			_ = a.logFile.Close()
		}
	})
}

func (a *Application) handleKey(ctx context.Context, ev *tcell.EventKey) error {
	composing := a.session.State() != session.StateIdle

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return ErrQuit

	case tcell.KeyEscape:
		a.session.StopComposition()

	case tcell.KeyEnter:
		if !composing {
			a.session.Input(ctx, "\n", composer.StyleDirect, true)
			return nil
		}
		if c, ok := a.selectedCandidate(); ok {
			a.session.Complete(ctx, c)
			return nil
		}
		a.session.Enter(ctx, true, true)

	case tcell.KeyTab, tcell.KeyDown:
		a.moveSelection(1)

	case tcell.KeyBacktab, tcell.KeyUp:
		a.moveSelection(-1)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.DeleteBackward(ctx, 1)

	case tcell.KeyDelete:
		a.session.DeleteForward(ctx, 1)

	case tcell.KeyLeft:
		a.session.MoveCursor(ctx, -1)

	case tcell.KeyRight:
		a.session.MoveCursor(ctx, 1)

	case tcell.KeyCtrlW:
		a.session.SmoothDelete(ctx)

	case tcell.KeyCtrlT:
		a.session.ChangeCharacter(ctx)

	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' && composing {
			// Space cycles the candidate list while composing.
			a.moveSelection(1)
			return nil
		}
		a.session.Input(ctx, string(r), composer.StyleRoman, false)
	}
	return nil
}

func (a *Application) moveSelection(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.results) == 0 {
		return
	}
	a.selection = (a.selection + delta + len(a.results)) % len(a.results)
}

// selectedCandidate returns the conversion candidate the selection
// points at, if it points at one.
func (a *Application) selectedCandidate() (candidate.Candidate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selection < 0 || a.selection >= len(a.results) {
		return candidate.Candidate{}, false
	}
	item := a.results[a.selection]
	if item.Kind != candidate.KindConversion {
		return candidate.Candidate{}, false
	}
	return item.Candidate, true
}

// builtinDict is the fallback dictionary used when no fixture path is
// given. Enough to type a greeting and see conversion, live clauses,
// and predictions at work.
const builtinDict = `{
  "entries": [
    {"ruby": "かんしゃ", "word": "感謝", "score": -500, "tag": "名詞"},
    {"ruby": "する", "word": "する", "score": -300, "tag": "動詞"},
    {"ruby": "きょう", "word": "今日", "score": -400, "tag": "名詞"},
    {"ruby": "は", "word": "は", "score": -200, "tag": "助詞"},
    {"ruby": "いい", "word": "いい", "score": -350, "tag": "形容詞"},
    {"ruby": "てんき", "word": "天気", "score": -450, "tag": "名詞"},
    {"ruby": "こんにちは", "word": "こんにちは", "score": -300, "tag": "感動詞"},
    {"ruby": "にほん", "word": "日本", "score": -400, "tag": "名詞"},
    {"ruby": "ご", "word": "語", "score": -250, "tag": "接尾辞"}
  ],
  "predictions": {
    "感謝": ["します", "する"],
    "今日": ["は", "の"],
    "天気": ["です", "予報"]
  }
}`
