// Package settings keeps user settings in a YAML file and notifies
// subscribers when values change, including edits made to the file by hand.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

var _ output.SettingsPort = (*Store)(nil)

type Store struct {
	mu       sync.RWMutex
	path     string
	defaults map[string]any
	values   map[string]any

	subsMu sync.Mutex
	subs   map[int]func(output.SettingChange)
	nextID int

	logger  output.LoggerPort
	watcher *fsnotify.Watcher
}

// NewStore loads settings from path. A missing file is not an error; an
// empty path keeps settings in memory only.
func NewStore(path string, logger output.LoggerPort) (*Store, error) {
	s := &Store{
		path:     path,
		defaults: entity.DefaultSettings(),
		values:   make(map[string]any),
		subs:     make(map[int]func(output.SettingChange)),
		logger:   logger.WithField("component", "settings"),
	}
	if path == "" {
		return s, nil
	}

	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return values, nil
}

// Read returns the stored value, the built-in default, or nil.
func (s *Store) Read(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok && v != nil {
		return v
	}
	return s.defaults[key]
}

// Write stores value, persists the file and notifies subscribers if the
// effective value changed.
func (s *Store) Write(key string, value any) error {
	s.mu.Lock()
	before := s.effective(key)
	s.values[key] = value
	snapshot := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	s.mu.Unlock()

	if s.path != "" {
		if err := writeFile(s.path, snapshot); err != nil {
			return err
		}
	}

	if !reflect.DeepEqual(before, value) {
		s.notify([]output.SettingChange{{Key: key, Value: value}})
	}
	return nil
}

func writeFile(path string, values map[string]any) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func (s *Store) effective(key string) any {
	if v, ok := s.values[key]; ok && v != nil {
		return v
	}
	return s.defaults[key]
}

func (s *Store) Subscribe(fn func(output.SettingChange)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(changes []output.SettingChange) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(output.SettingChange), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subsMu.Unlock()

	for _, change := range changes {
		for _, fn := range fns {
			fn(change)
		}
	}
}

// Reload re-reads the file and emits one change per key whose effective
// value differs.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	values, err := readFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	keys := make(map[string]struct{})
	for k := range s.values {
		keys[k] = struct{}{}
	}
	for k := range values {
		keys[k] = struct{}{}
	}
	before := make(map[string]any, len(keys))
	for k := range keys {
		before[k] = s.effective(k)
	}
	s.values = values

	var changes []output.SettingChange
	for k := range keys {
		if after := s.effective(k); !reflect.DeepEqual(before[k], after) {
			changes = append(changes, output.SettingChange{Key: k, Value: after})
		}
	}
	s.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	if len(changes) > 0 {
		s.logger.Info("Settings reloaded", "changed", len(changes))
		s.notify(changes)
	}
	return nil
}

// Watch reloads the file whenever it changes on disk until ctx is done or
// Close is called. The parent directory is watched so editors that replace
// the file are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go s.watch(ctx, watcher)
	return nil
}

func (s *Store) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("Settings reload failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Settings watcher error", "error", err)
		}
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher == nil {
		return nil
	}
	if err := watcher.Close(); err != nil {
		return fmt.Errorf("close settings watcher: %w", err)
	}
	return nil
}
