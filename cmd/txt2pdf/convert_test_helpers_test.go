package main

// Notes:
// - Mocks shared by the convert, batch and discovery tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"context"
	"sync"
	"sync/atomic"

	txt2pdf "github.com/alnah/go-txt2pdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns fixed HTML and PDF bytes.
type mockConverter struct {
	mu     sync.Mutex
	inputs []txt2pdf.Input
	err    error
}

func (m *mockConverter) Convert(_ context.Context, in txt2pdf.Input) (*txt2pdf.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := &txt2pdf.ConvertResult{HTML: []byte("<title>" + in.Title + "</title>")}
	if !in.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockConverter) calls() []txt2pdf.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]txt2pdf.Input(nil), m.inputs...)
}

// mockPool hands out the same converter and counts calls.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error
	acquired   atomic.Int32
	released   atomic.Int32
}

func newMockPool(conv CLIConverter, size int) *mockPool {
	return &mockPool{conv: conv, size: size}
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	p.acquired.Add(1)
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.released.Add(1)
}

func (p *mockPool) Size() int {
	return p.size
}

var _ Pool = (*mockPool)(nil)
