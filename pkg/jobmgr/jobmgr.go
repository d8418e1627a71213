// Package jobmgr tracks named background jobs with cancellation and lifecycle
// callbacks. A job name is unique while the job runs, which doubles as a cheap
// mutual-exclusion primitive: starting "battleroyale:<channel>" twice fails
// until the first game finishes.
//
// The package stays intentionally small: no retries, no worker pools, no
// persistence. Each job runs in its own goroutine and removes itself when the
// runner returns.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultManager is the process-wide job manager.
var DefaultManager = NewManager(nil)

// StatusReporter receives lifecycle events, one line per event:
//
//	running:rainbowrole:123456789
//	error:rainbowrole:123456789:role gone
//	done:rainbowrole:123456789
type StatusReporter func(string)

type job struct {
	name   string
	cancel context.CancelFunc
}

// Manager starts, stops and lists named jobs. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*job
	reporter StatusReporter
}

// NewManager creates a Manager. The reporter may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*job),
		reporter: reporter,
	}
}

// Start runs runner under the given name in a new goroutine. It returns an
// error without starting anything if a job with that name is already running.
// The runner's context is cancelled by Stop, StopPrefix, or StopAll.
func (m *Manager) Start(name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job %q is already running", name)
	}
	m.jobs[name] = &job{name: name, cancel: cancel}
	m.mu.Unlock()

	go func() {
		m.report("running:" + name)
		err := runner(ctx)

		// Remove the job before reporting so a listener reacting to the
		// final event can restart it under the same name.
		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()

		if err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}
	}()

	return nil
}

// Stop cancels a running job by exact name.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job %q is not running", name)
	}
	j.cancel()
	delete(m.jobs, name)
	return nil
}

// StopPrefix cancels every running job whose name starts with prefix and
// returns how many were stopped.
func (m *Manager) StopPrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for name, j := range m.jobs {
		if strings.HasPrefix(name, prefix) {
			j.cancel()
			delete(m.jobs, name)
			n++
		}
	}
	return n
}

// StopAll cancels every running job.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, j := range m.jobs {
		j.cancel()
		delete(m.jobs, name)
	}
}

// Running reports whether a job with the exact name is active.
func (m *Manager) Running(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[name]
	return ok
}

// List returns the sorted names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) report(s string) {
	if m.reporter != nil {
		m.reporter(s)
	}
}
