// Package testutil holds shared helpers for unit and integration tests.
package testutil

import (
	"bytes"
	"context"
	"sync"

	"github.com/vk/stagehand/internal/execcmd"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// FakeResult scripts the outcome of one fake command.
type FakeResult struct {
	ExitCode int
	Err      error
}

// FakeRunner is a scripted execcmd.Runner. Outcomes are keyed by the
// command's argv[0]; unscripted commands succeed. Every call is recorded.
type FakeRunner struct {
	mu      sync.Mutex
	Results map[string]FakeResult
	Calls   [][]string
}

// Run implements execcmd.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd execcmd.Command) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	argv := append([]string(nil), cmd.Argv...)
	f.Calls = append(f.Calls, argv)

	if res, ok := f.Results[cmd.Argv[0]]; ok {
		return res.ExitCode, res.Err
	}
	return 0, nil
}

// Called reports whether any recorded call had the given argv[0].
func (f *FakeRunner) Called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, argv := range f.Calls {
		if len(argv) > 0 && argv[0] == name {
			return true
		}
	}
	return false
}
