// Package socket implements the request multiplexing socket: the subsystem
// that serializes typed Command values from many concurrent callers into
// length-selected HID output reports, matches incoming HID input reports
// back to callers by request identifier, and converts every failure into a
// ModuleError (recoverable) or FatalError (terminal, broadcast to every
// pending caller).
package socket

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/iotzio-project/iotzio-go/internal/logging"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/runtimeid"
	"github.com/iotzio-project/iotzio-go/transport"
)

// sendResult is what the background reader goroutine hands back to a
// waiting Send call: exactly one of resp, modErr or fatal is set.
type sendResult struct {
	resp   protocol.Response
	modErr *protocol.ModuleError
	fatal  *protocol.FatalError
}

// pendingEntry pairs a waiting caller's sink with the CommandID of the
// request it sent, so the reader loop can catch a device that answers with
// the wrong Response variant (ReceivedWrongResponse) instead of silently
// handing a caller a reply shaped for someone else's command.
type pendingEntry struct {
	ch    chan sendResult
	cmdID protocol.CommandID
}

// Socket owns one open, handshaken connection to a board. All of its
// exported methods are safe for concurrent use by multiple goroutines.
//
// Reader election: a single dedicated background reader goroutine, started
// at Open time, dispatches each decoded response to the pending caller it
// belongs to via a one-shot channel. Reads are gated on at least one slot
// being pending, so no send starves while its response is already on the
// wire and the reader never consumes a report nobody is waiting for.
type Socket struct {
	transport transport.Transport
	logger    *logging.Logger

	outputMu    sync.Mutex
	outputTable ReportTable

	mu      sync.Mutex // guards pending and fatal
	pending map[uint32]pendingEntry
	fatal   *protocol.FatalError
	wake    chan struct{} // signalled when a pending slot is registered

	counter uint32 // atomic

	runtimeToken *runtimeid.Token
	boardInfo    protocol.BoardInfo

	cancel     context.CancelFunc
	readerDone chan struct{}
}

// newBareSocket wires up an unopened Socket around an already-handshaken
// transport and report tables. Callers (Open) still need to perform the
// bootstrap Initialize exchange before handing the Socket to an
// application.
func newBareSocket(t transport.Transport, outputTable, inputTable ReportTable, token *runtimeid.Token) *Socket {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Socket{
		transport:    t,
		logger:       logging.Default(),
		outputTable:  outputTable,
		pending:      make(map[uint32]pendingEntry),
		wake:         make(chan struct{}, 1),
		runtimeToken: token,
		cancel:       cancel,
		readerDone:   make(chan struct{}),
	}
	go s.readLoop(ctx, inputTable.BufferSize())
	return s
}

// BoardInfo returns the immutable board identity captured during the
// bootstrap Initialize exchange.
func (s *Socket) BoardInfo() protocol.BoardInfo {
	return s.boardInfo
}

// RuntimeIdentifier returns the runtime identifier this socket holds
// exclusively for its lifetime.
func (s *Socket) RuntimeIdentifier() uint64 {
	return s.runtimeToken.ID()
}

// Close terminates the reader goroutine, closes the underlying transport
// and releases the runtime identifier. Any callers still blocked in Send
// observe FatalError(DeviceClosed) once the transport read unblocks with an
// error; Close does not itself broadcast, since closing the transport is
// sufficient to unblock the reader loop into doing so.
func (s *Socket) Close() error {
	s.cancel()
	err := s.transport.Close()
	<-s.readerDone
	s.runtimeToken.Release()
	return err
}

// Send assigns the command a fresh request identifier, encodes and writes
// it, then waits for the matching response. Exactly one of the three return
// values is non-nil: a Response on success, a ModuleError for a recoverable
// device-side refusal, or a FatalError once the socket is unusable.
func (s *Socket) Send(cmd protocol.Command) (protocol.Response, *protocol.ModuleError, *protocol.FatalError) {
	if f := s.getFatal(); f != nil {
		return nil, nil, f
	}

	id := atomic.AddUint32(&s.counter, 1) - 1

	// required length counts the report ID byte the transport frame carries
	// in front of the body, so the full host-report header is 7 bytes.
	body := protocol.EncodeHostReportBody(id, cmd)
	entry, selErr := SelectReportID(s.outputTable, 1+len(body))
	if selErr != nil {
		fatal := protocol.NewFatalError(protocol.FatalCodeHostProtocolError, "selecting output report id", selErr)
		s.broadcastFatal(fatal)
		return nil, nil, fatal
	}

	buf := make([]byte, 1+entry.Capacity)
	buf[0] = entry.ID
	copy(buf[1:], body)

	// The slot must exist before the report leaves the host: the reader
	// goroutine is only gated on "at least one slot is pending", so a reply
	// arriving faster than a post-write registration could be dispatched as
	// a stray and dropped.
	ch := make(chan sendResult, 1)
	s.mu.Lock()
	if f := s.fatal; f != nil {
		s.mu.Unlock()
		return nil, nil, f
	}
	s.pending[id] = pendingEntry{ch: ch, cmdID: cmd.CommandID()}
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}

	s.outputMu.Lock()
	writeErr := s.transport.WriteReport(buf)
	s.outputMu.Unlock()
	if writeErr != nil {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		fatal := protocol.NewFatalError(protocol.FatalCodeHostWriteError, "writing output report", writeErr)
		s.broadcastFatal(fatal)
		return nil, nil, fatal
	}

	result := <-ch
	if result.fatal != nil {
		return nil, nil, result.fatal
	}
	if result.modErr != nil {
		return nil, result.modErr, nil
	}
	return result.resp, nil, nil
}

func (s *Socket) getFatal() *protocol.FatalError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// readLoop is the single background reader: it owns the transport's read
// side for the Socket's whole lifetime, decoding each input report and
// dispatching it to the pending caller it belongs to, or broadcasting a
// FatalError to every pending caller on any unrecoverable condition.
func (s *Socket) readLoop(ctx context.Context, bufSize int) {
	defer close(s.readerDone)
	readBuf := make([]byte, bufSize)

	for {
		if !s.awaitPending(ctx) {
			return
		}

		for i := range readBuf {
			readBuf[i] = 0
		}

		n, err := s.transport.ReadReport(readBuf)
		if err != nil {
			if ctx.Err() != nil {
				s.broadcastFatal(protocol.NewFatalError(protocol.FatalCodeDeviceClosed, "socket closed", nil))
			} else {
				s.broadcastFatal(protocol.NewFatalError(protocol.FatalCodeHostReadError, "reading input report", err))
			}
			return
		}
		if n <= 1 {
			s.broadcastFatal(protocol.NewFatalError(protocol.FatalCodeHostProtocolError, "input report shorter than header", protocol.NewProtocolError(protocol.ErrPacketTooSmall, "")))
			return
		}

		decoded, err := protocol.DecodeDeviceReport(readBuf[1:n])
		if err != nil {
			s.broadcastFatal(protocol.NewFatalError(protocol.FatalCodeHostProtocolError, "decoding device report", err))
			return
		}

		if decoded.Fatal != nil {
			s.broadcastFatal(decoded.Fatal)
			return
		}

		if fatal := s.dispatch(decoded.Identifier, decoded.Response, decoded.ModuleErr); fatal != nil {
			return
		}
	}
}

// awaitPending blocks until at least one slot is pending, so the reader
// never consumes a report no caller is waiting for. Returns false once the
// socket is closed.
func (s *Socket) awaitPending(ctx context.Context) bool {
	for {
		s.mu.Lock()
		n := len(s.pending)
		s.mu.Unlock()
		if n > 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-s.wake:
		}
	}
}

// dispatch routes one decoded response to the caller whose identifier it
// carries. A non-nil return means the report violated the protocol shape
// and the socket has been poisoned; the read loop must stop.
func (s *Socket) dispatch(id uint32, resp protocol.Response, modErr *protocol.ModuleError) *protocol.FatalError {
	s.mu.Lock()
	entry, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		// Stray response: no caller is waiting (e.g. its Send was abandoned).
		s.logger.Debugf("socket: discarding response for unknown identifier %d", id)
		return nil
	}
	if resp != nil && resp.CommandID() != entry.cmdID {
		fatal := protocol.NewFatalError(protocol.FatalCodeHostProtocolError, "response variant does not match the command this identifier was sent with",
			protocol.NewProtocolError(protocol.ErrReceivedWrongResponse, ""))
		entry.ch <- sendResult{fatal: fatal}
		s.broadcastFatal(fatal)
		return fatal
	}
	entry.ch <- sendResult{resp: resp, modErr: modErr}
	return nil
}

func (s *Socket) broadcastFatal(fatal *protocol.FatalError) {
	s.mu.Lock()
	if s.fatal == nil {
		s.fatal = fatal
	}
	pending := s.pending
	s.pending = make(map[uint32]pendingEntry)
	s.mu.Unlock()

	if len(pending) > 0 {
		s.logger.Error("socket: broadcasting fatal error to pending callers", "code", fatal.Code, "pending", len(pending))
	}
	for _, entry := range pending {
		entry.ch <- sendResult{fatal: fatal}
	}
}
