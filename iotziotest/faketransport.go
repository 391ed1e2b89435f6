// Package iotziotest provides a scriptable transport.Transport fake for
// testing the socket, gpio and i2c packages without a real board attached:
// an exported, interface-satisfying double that records every write and lets
// a test script exact replies, including adversarial ones (out-of-order
// identifiers, I/O errors) that a real board would be awkward to provoke.
package iotziotest

import (
	"sync"

	"github.com/iotzio-project/iotzio-go/transport"
)

type queuedReply struct {
	data []byte
	err  error
}

// FakeTransport is a transport.Transport whose replies are scripted ahead of
// time via QueueReply/QueueReadError. Every WriteReport call is recorded
// verbatim and can be inspected afterwards with Writes.
type FakeTransport struct {
	mu       sync.Mutex
	writes   [][]byte
	replies  []queuedReply
	notEmpty chan struct{}
	closed   bool
	writeErr error
}

// NewFakeTransport returns a FakeTransport ready to be scripted.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		notEmpty: make(chan struct{}, 1),
	}
}

var _ transport.Transport = (*FakeTransport)(nil)

// QueueReply schedules data as the result of a future ReadReport call, in
// FIFO order relative to other QueueReply/QueueReadError calls.
func (f *FakeTransport) QueueReply(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.push(queuedReply{data: cp})
}

// QueueReadError schedules err as the result of a future ReadReport call.
func (f *FakeTransport) QueueReadError(err error) {
	f.push(queuedReply{err: err})
}

func (f *FakeTransport) push(r queuedReply) {
	f.mu.Lock()
	f.replies = append(f.replies, r)
	f.mu.Unlock()
	select {
	case f.notEmpty <- struct{}{}:
	default:
	}
}

// SetWriteError makes every subsequent WriteReport call fail with err.
func (f *FakeTransport) SetWriteError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

// WriteReport records buf and returns the scripted write error, if any.
func (f *FakeTransport) WriteReport(buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	f.writes = append(f.writes, cp)
	return nil
}

// ReadReport blocks until a reply has been queued, then copies it into buf
// and returns its length (or its scripted error). Once Close has been
// called and the queue is drained, it returns transport.ErrClosed.
func (f *FakeTransport) ReadReport(buf []byte) (int, error) {
	for {
		f.mu.Lock()
		if len(f.replies) > 0 {
			r := f.replies[0]
			f.replies = f.replies[1:]
			f.mu.Unlock()
			if r.err != nil {
				return 0, r.err
			}
			n := copy(buf, r.data)
			return n, nil
		}
		closed := f.closed
		f.mu.Unlock()
		if closed {
			return 0, transport.ErrClosed
		}
		<-f.notEmpty
	}
}

// Close marks the fake closed; any blocked or future ReadReport call
// returns transport.ErrClosed once the queue is drained.
func (f *FakeTransport) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	select {
	case f.notEmpty <- struct{}{}:
	default:
	}
	return nil
}

// Writes returns every buffer previously passed to WriteReport, in order.
func (f *FakeTransport) Writes() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.writes))
	copy(out, f.writes)
	return out
}
