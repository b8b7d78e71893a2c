package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("inference: pool closed")

// Pool hands out up to Size ONNX sessions so one classifier can serve
// concurrent detectors. The first session is opened by NewPool, the rest
// on demand.
type Pool struct {
	modelPath string
	size      int
	idle      chan *Session

	mu     sync.Mutex
	opened int
	closed bool
}

// NewPool opens one session on modelPath and allows up to size of them.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	first, err := NewSession(modelPath)
	if err != nil {
		return nil, fmt.Errorf("creating session 0: %w", err)
	}

	p := &Pool{
		modelPath: modelPath,
		size:      size,
		idle:      make(chan *Session, size),
		opened:    1,
	}
	p.idle <- first
	return p, nil
}

// Acquire returns an idle session, opens a new one while fewer than Size
// are open, or else waits for a Release.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case s, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	default:
	}

	if s, err := p.open(); s != nil || err != nil {
		return s, err
	}

	select {
	case s, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// open starts a new session, or returns nil, nil when the pool is full.
func (p *Pool) open() (*Session, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.opened >= p.size {
		p.mu.Unlock()
		return nil, nil
	}
	p.opened++
	n := p.opened
	p.mu.Unlock()

	s, err := NewSession(p.modelPath)
	if err != nil {
		p.mu.Lock()
		p.opened--
		p.mu.Unlock()
		return nil, fmt.Errorf("creating session %d: %w", n-1, err)
	}
	return s, nil
}

// Release returns a session to the pool. Sessions released after Close are
// closed instead.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = s.Close()
		return
	}
	// never blocks: at most size sessions exist
	p.idle <- s
}

// Close closes every idle session. Sessions still acquired are closed on
// Release.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	p.mu.Unlock()

	var errs []error
	for s := range p.idle {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the maximum number of sessions.
func (p *Pool) Size() int {
	return p.size
}

// Open returns the number of sessions opened so far.
func (p *Pool) Open() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opened
}

// Infer runs one inference on a pooled session.
func (p *Pool) Infer(ctx context.Context, features []float32) ([]float32, error) {
	session, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(session)

	return session.Infer(ctx, features)
}
