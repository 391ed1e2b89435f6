package i2c

import (
	"github.com/iotzio-project/iotzio-go/ioerr"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
)

type chunkedMode int

const (
	chunkedModeRead chunkedMode = iota
	chunkedModeWrite
)

// chunkedSession is the scoped resource backing a chunked read or write:
// once the matching Start* command has been acknowledged, the board expects
// a Stop* command on every exit path, success or failure. Close is
// idempotent so a deferred call after an explicit one is a no-op.
type chunkedSession struct {
	socket     *socket.Socket
	identifier protocol.I2cIdentifier
	mode       chunkedMode
	closed     bool
	err        error
}

func newChunkedSession(s *socket.Socket, identifier protocol.I2cIdentifier, mode chunkedMode) *chunkedSession {
	return &chunkedSession{socket: s, identifier: identifier, mode: mode}
}

// runAndClose runs fn, then always sends the Stop command, even if fn
// failed partway through a chunk sequence. If fn failed, that error wins
// and the Stop command's own outcome is discarded (the board is being told
// to abandon the session regardless); if fn succeeded, Close's error (if
// any) is returned instead.
func (s *chunkedSession) runAndClose(fn func() error) error {
	defer func() { _ = s.Close() }()
	if err := fn(); err != nil {
		return err
	}
	return s.Close()
}

// Close sends the Stop command for this session's mode. It is safe to call
// more than once; only the first call talks to the board.
func (s *chunkedSession) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true

	switch s.mode {
	case chunkedModeRead:
		s.err = s.stopRead()
	case chunkedModeWrite:
		s.err = s.stopWrite()
	}
	return s.err
}

func (s *chunkedSession) stopRead() error {
	cmd := protocol.CommandI2cStopReadChunked{Identifier: s.identifier}
	resp, modErr, fatal := s.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseI2cStopReadChunked)
	if !ok {
		return ioerr.WrongResponseError("i2c.chunkedSession.Close(read)")
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}

func (s *chunkedSession) stopWrite() error {
	cmd := protocol.CommandI2cStopWriteChunked{Identifier: s.identifier}
	resp, modErr, fatal := s.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseI2cStopWriteChunked)
	if !ok {
		return ioerr.WrongResponseError("i2c.chunkedSession.Close(write)")
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}
