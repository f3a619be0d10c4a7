package backend

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is what the memory backend returns when armed to fail.
var ErrUnavailable = errors.New("backend unavailable")

// Memory is an in-process document backend. Tests use it in place of the
// channel; FailReads/FailWrites arm it to simulate transport failures.
type Memory struct {
	mu         sync.Mutex
	content    string
	exists     bool
	FailReads  bool
	FailWrites bool
}

// NewMemory returns an empty memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// Seed sets the stored document directly, bypassing Replace.
func (m *Memory) Seed(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	m.exists = true
}

// Content returns the stored document text as-is.
func (m *Memory) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

func (m *Memory) Fetch(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, ErrUnavailable
	}
	if !m.exists {
		return "", false, nil
	}
	return m.content, true, nil
}

func (m *Memory) Replace(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.content = content
	m.exists = true
	return nil
}
