// Package datastore implements the bot's persistence layer: one JSON file of
// namespaced keys ("guild:<id>:antilinks", "user:<id>:battlestats"), held in
// memory and flushed with atomic writes, checksum verification and rotated
// backups.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by mutating calls after Close.
var ErrClosed = errors.New("datastore is closed")

// Config holds configuration options for the Store.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	BackupCount      int // backups kept per file, 0 disables backups
	Logger           zerolog.Logger
}

// DefaultConfig returns the configuration used by the bot: ten-second
// autosave and three rotated backups.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		BackupCount:      3,
		Logger:           zerolog.Nop(),
	}
}

// Store is a concurrency-safe key-value store backed by a single JSON file.
// Values are kept as raw JSON so callers round-trip their own record types.
type Store struct {
	mu           sync.RWMutex
	data         map[string]json.RawMessage
	file         string
	cfg          *Config
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	lastChecksum string
	lastSaved    time.Time
	closed       atomic.Bool
}

// New creates a Store with DefaultConfig.
func New(filePath string) (*Store, error) {
	return NewWithConfig(DefaultConfig(filePath))
}

// NewWithConfig opens or creates the backing file and starts the autosave
// loop. Call Close to flush and stop it.
func NewWithConfig(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.FilePath == "" {
		return nil, errors.New("file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		data:   make(map[string]json.RawMessage),
		file:   cfg.FilePath,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	switch _, err := os.Stat(cfg.FilePath); {
	case os.IsNotExist(err):
		if err := s.writeFileAtomic([]byte("{}")); err != nil {
			cancel()
			return nil, fmt.Errorf("create empty store file: %w", err)
		}
	case err == nil:
		if err := s.load(); err != nil {
			cancel()
			return nil, err
		}
	default:
		cancel()
		return nil, fmt.Errorf("stat %s: %w", cfg.FilePath, err)
	}

	if cfg.AutoSaveInterval > 0 {
		s.wg.Add(1)
		go s.autoSave()
	}

	return s, nil
}

// Set stores value under key, replacing any previous record.
func (s *Store) Set(key string, value any) error {
	if s.closed.Load() {
		return ErrClosed
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Get decodes the record at key into out. The bool reports whether the key
// existed.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the record at key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Keys returns the sorted keys starting with prefix. An empty prefix lists
// every key.
func (s *Store) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Update atomically read-modify-writes the record at key. fn receives the
// current record (zero value and ok=false when absent) and returns the
// record to store.
func Update[T any](s *Store, key string, fn func(cur T, ok bool) (T, error)) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var cur T
	raw, ok := s.data[key]
	if ok {
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}

	next, err := fn(cur, ok)
	if err != nil {
		return err
	}

	buf, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.data[key] = buf
	return nil
}

// Stats describes the store for diagnostics.
type Stats struct {
	Keys      int
	FilePath  string
	LastSaved time.Time
}

// Stats returns a snapshot of store diagnostics.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Keys:      len(s.data),
		FilePath:  s.file,
		LastSaved: s.lastSaved,
	}
}

// Save forces an immediate flush to disk.
func (s *Store) Save() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.save()
}

// Close stops the autosave loop and flushes once more. Subsequent mutations
// fail with ErrClosed; Close itself is idempotent.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.cancel()
	s.wg.Wait()
	return s.save()
}

func (s *Store) autoSave() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if err := s.save(); err != nil {
				s.cfg.Logger.Error().Err(err).Msg("datastore autosave failed")
			}
		}
	}
}

// save flushes to disk, skipping the write when nothing changed since the
// last flush.
func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	sum := checksum(data)
	if sum == s.lastChecksum {
		return nil
	}

	if s.cfg.BackupCount > 0 {
		if err := s.createBackup(); err != nil {
			s.cfg.Logger.Warn().Err(err).Msg("datastore backup failed")
		}
	}

	if err := s.writeFileAtomic(data); err != nil {
		return err
	}
	if err := s.verifyFile(data); err != nil {
		return err
	}

	s.lastChecksum = sum
	s.lastSaved = time.Now()
	return nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.file, err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse %s: %w", s.file, err)
	}
	if m == nil {
		m = make(map[string]json.RawMessage)
	}

	s.data = m
	s.lastChecksum = checksum(data)
	return nil
}

// writeFileAtomic writes to a temp file, syncs it, then renames over the
// target so a crash never leaves a half-written store.
func (s *Store) writeFileAtomic(data []byte) error {
	tmp := s.file + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, s.file); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// verifyFile re-reads the target and compares checksums.
func (s *Store) verifyFile(expected []byte) error {
	actual, err := os.ReadFile(s.file)
	if err != nil {
		return fmt.Errorf("verify read: %w", err)
	}
	if checksum(actual) != checksum(expected) {
		return errors.New("store file checksum mismatch after write")
	}
	return nil
}

func (s *Store) createBackup() error {
	if _, err := os.Stat(s.file); os.IsNotExist(err) {
		return nil
	}

	backup := fmt.Sprintf("%s.backup.%s", s.file, time.Now().Format("20060102_150405"))

	src, err := os.Open(s.file)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backup)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	s.pruneBackups()
	return nil
}

// pruneBackups removes the oldest backups beyond BackupCount.
func (s *Store) pruneBackups() {
	matches, err := filepath.Glob(s.file + ".backup.*")
	if err != nil || len(matches) <= s.cfg.BackupCount {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-s.cfg.BackupCount] {
		os.Remove(path)
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
