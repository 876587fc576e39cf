package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// ChangeHandler is called after the settings file is reloaded.
type ChangeHandler func(Settings)

// FileProvider loads Settings from a TOML file and optionally watches
// it for live reload. Snapshot is safe for concurrent use.
type FileProvider struct {
	mu       sync.RWMutex
	path     string
	settings Settings
	handlers []ChangeHandler

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// LoadFile parses a settings file. Missing file is not an error; the
// defaults apply.
func LoadFile(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("config: parsing %s: %w", path, err)
	}
	s.resolve()
	return s, nil
}

// NewFileProvider loads path and returns a provider over it.
func NewFileProvider(path string) (*FileProvider, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileProvider{path: path, settings: s}, nil
}

// Snapshot implements Provider.
func (p *FileProvider) Snapshot() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// OnChange registers a handler called after every successful reload.
func (p *FileProvider) OnChange(h ChangeHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, h)
}

// Watch starts watching the settings file for live reload. It returns
// immediately; Close stops the watch.
func (p *FileProvider) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: creating watcher: %w", err)
	}
	if err := w.Add(p.path); err != nil {
		w.Close()
		return fmt.Errorf("config: watching %s: %w", p.path, err)
	}

	p.watcher = w
	p.done = make(chan struct{})
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					p.reload()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
				// Watch errors are not fatal; the last good
				// settings stay in effect.
			case <-p.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher, if any.
func (p *FileProvider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.done)
	err := p.watcher.Close()
	p.wg.Wait()
	p.watcher = nil
	return err
}

func (p *FileProvider) reload() {
	s, err := LoadFile(p.path)
	if err != nil {
		return // keep last good settings
	}

	p.mu.Lock()
	p.settings = s
	handlers := append([]ChangeHandler(nil), p.handlers...)
	p.mu.Unlock()

	for _, h := range handlers {
		h(s)
	}
}
