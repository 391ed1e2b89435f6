// Package i2c implements the board's I2C bus module as a thin client layer
// over socket.Socket: single-shot transactions up to BusBufferSize bytes go
// through the *Single commands; anything larger is split into a
// Start/Chunk.../Stop sequence, with the Stop command modeled as a scoped
// resource (chunkedSession) whose Close is always invoked via defer so it
// fires even when an intermediate chunk fails.
package i2c

import (
	"sync"

	"github.com/iotzio-project/iotzio-go/internal/constants"
	"github.com/iotzio-project/iotzio-go/ioerr"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
)

// Bus is an opened I2C peripheral. Transactions against it are serialized
// by one mutex so that interleaved operations from multiple goroutines
// don't scramble a chunked transfer's chunk ordering.
type Bus struct {
	socket     *socket.Socket
	mu         sync.Mutex
	identifier protocol.I2cIdentifier
}

// New brings up the I2C bus described by cfg.
func New(s *socket.Socket, cfg protocol.I2cConfig) (*Bus, error) {
	cmd := protocol.CommandI2cNew{Config: cfg}
	resp, modErr, fatal := s.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return nil, err
	}
	r, ok := resp.(protocol.ResponseI2cNew)
	if !ok {
		return nil, ioerr.WrongResponseError("i2c.New")
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &Bus{socket: s, identifier: cfg.Identifier}, nil
}

// Identifier returns which of the board's two I2C peripherals this Bus uses.
func (b *Bus) Identifier() protocol.I2cIdentifier { return b.identifier }

// Close releases the bus on the board.
func (b *Bus) Close() error {
	cmd := protocol.CommandI2cDrop{Identifier: b.identifier}
	resp, modErr, fatal := b.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseI2cDrop)
	if !ok {
		return ioerr.WrongResponseError("i2c.Bus.Close")
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}

// Read reads len(buf) bytes from address into buf, using a single
// transaction if it fits within BusBufferSize or a chunked session
// otherwise.
func (b *Bus) Read(address uint8, buf []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readLocked(address, buf)
}

// Write writes data to address, using a single transaction if it fits
// within BusBufferSize or a chunked session otherwise.
func (b *Bus) Write(address uint8, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writeLocked(address, data)
}

// WriteRead writes data to address, then reads len(buf) bytes back, as one
// atomic transaction if both fit within BusBufferSize. Otherwise it falls
// back to an independent Write followed by an independent Read.
func (b *Bus) WriteRead(address uint8, data []byte, buf []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) <= constants.BusBufferSize && len(buf) <= constants.BusBufferSize {
		cmd := protocol.CommandI2cWriteReadSingle{Identifier: b.identifier, Address: address, Bytes: data, BufferSize: uint32(len(buf))}
		resp, modErr, fatal := b.socket.Send(cmd)
		if err := ioerr.WrapSendError(modErr, fatal); err != nil {
			return err
		}
		r, ok := resp.(protocol.ResponseI2cWriteReadSingle)
		if !ok {
			return ioerr.WrongResponseError("i2c.Bus.WriteRead")
		}
		if r.Err != nil {
			return r.Err
		}
		copy(buf, r.Data)
		return nil
	}

	if err := b.writeLocked(address, data); err != nil {
		return err
	}
	return b.readLocked(address, buf)
}

func (b *Bus) readLocked(address uint8, buf []byte) error {
	if len(buf) <= constants.BusBufferSize {
		cmd := protocol.CommandI2cReadSingle{Identifier: b.identifier, Address: address, BufferSize: uint32(len(buf))}
		resp, modErr, fatal := b.socket.Send(cmd)
		if err := ioerr.WrapSendError(modErr, fatal); err != nil {
			return err
		}
		r, ok := resp.(protocol.ResponseI2cReadSingle)
		if !ok {
			return ioerr.WrongResponseError("i2c.Bus.Read")
		}
		if r.Err != nil {
			return r.Err
		}
		copy(buf, r.Data)
		return nil
	}

	chunksCount := chunkCount(len(buf))
	startCmd := protocol.CommandI2cStartReadChunked{Identifier: b.identifier, Address: address, ChunksCount: uint32(chunksCount)}
	resp, modErr, fatal := b.socket.Send(startCmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseI2cStartReadChunked)
	if !ok {
		return ioerr.WrongResponseError("i2c.Bus.Read(start)")
	}
	if r.Err != nil {
		return r.Err
	}

	session := newChunkedSession(b.socket, b.identifier, chunkedModeRead)
	return session.runAndClose(func() error { return b.readChunks(buf, chunksCount) })
}

func (b *Bus) readChunks(buf []byte, chunksCount int) error {
	for i := 0; i < chunksCount; i++ {
		lo := i * constants.BusBufferSize
		hi := lo + constants.BusBufferSize
		if hi > len(buf) {
			hi = len(buf)
		}
		chunkCmd := protocol.CommandI2cReadChunk{Identifier: b.identifier, BufferSize: uint32(hi - lo), ChunkIndex: uint32(i)}
		resp, modErr, fatal := b.socket.Send(chunkCmd)
		if err := ioerr.WrapSendError(modErr, fatal); err != nil {
			return err
		}
		cr, ok := resp.(protocol.ResponseI2cReadChunk)
		if !ok {
			return ioerr.WrongResponseError("i2c.Bus.Read(chunk)")
		}
		if cr.Err != nil {
			return cr.Err
		}
		copy(buf[lo:hi], cr.Data)
	}
	return nil
}

func (b *Bus) writeLocked(address uint8, data []byte) error {
	if len(data) <= constants.BusBufferSize {
		cmd := protocol.CommandI2cWriteSingle{Identifier: b.identifier, Address: address, Bytes: data}
		resp, modErr, fatal := b.socket.Send(cmd)
		if err := ioerr.WrapSendError(modErr, fatal); err != nil {
			return err
		}
		r, ok := resp.(protocol.ResponseI2cWriteSingle)
		if !ok {
			return ioerr.WrongResponseError("i2c.Bus.Write")
		}
		if r.Err != nil {
			return r.Err
		}
		return nil
	}

	chunksCount := chunkCount(len(data))
	startCmd := protocol.CommandI2cStartWriteChunked{Identifier: b.identifier, Address: address, ChunksCount: uint32(chunksCount)}
	resp, modErr, fatal := b.socket.Send(startCmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseI2cStartWriteChunked)
	if !ok {
		return ioerr.WrongResponseError("i2c.Bus.Write(start)")
	}
	if r.Err != nil {
		return r.Err
	}

	session := newChunkedSession(b.socket, b.identifier, chunkedModeWrite)
	return session.runAndClose(func() error { return b.writeChunks(data, chunksCount) })
}

func (b *Bus) writeChunks(data []byte, chunksCount int) error {
	for i := 0; i < chunksCount; i++ {
		lo := i * constants.BusBufferSize
		hi := lo + constants.BusBufferSize
		if hi > len(data) {
			hi = len(data)
		}
		chunkCmd := protocol.CommandI2cWriteChunk{Identifier: b.identifier, Bytes: data[lo:hi], ChunkIndex: uint32(i)}
		resp, modErr, fatal := b.socket.Send(chunkCmd)
		if err := ioerr.WrapSendError(modErr, fatal); err != nil {
			return err
		}
		cr, ok := resp.(protocol.ResponseI2cWriteChunk)
		if !ok {
			return ioerr.WrongResponseError("i2c.Bus.Write(chunk)")
		}
		if cr.Err != nil {
			return cr.Err
		}
	}
	return nil
}

func chunkCount(n int) int {
	return (n + constants.BusBufferSize - 1) / constants.BusBufferSize
}
