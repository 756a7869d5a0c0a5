// Package broadcast implements the Stellarium-compatible telescope-control
// wire protocol: a single-peer TCP server that pushes 24-byte little-endian
// position packets to whatever planetarium client is currently connected.
package broadcast

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"net"
	"time"

	"skyscope/internal/logging"
	"skyscope/internal/pipeline"
)

// DefaultPort is the standard Stellarium telescope-control port.
const DefaultPort = 10001

const packetSize = 24

const reconnectBackoff = 10 * time.Second

// Server accepts one Stellarium client at a time and streams it position
// updates pulled from a pipeline subscription. Subsequent connection
// attempts wait in the listener's Accept call until the current peer
// disconnects and the loop calls Accept again.
type Server struct {
	log  *slog.Logger
	pipe *pipeline.Pipeline
	addr string
}

// New builds a broadcast Server bound to port (DefaultPort if 0), serving
// positions from pipe's subscription feed.
func New(log *slog.Logger, pipe *pipeline.Pipeline, port int) *Server {
	if port == 0 {
		port = DefaultPort
	}
	return &Server{log: log, pipe: pipe, addr: fmt.Sprintf(":%d", port)}
}

// Run listens and serves clients, one at a time, until ctx is cancelled.
// A listen failure is logged and retried after reconnectBackoff.
func (s *Server) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		ln, err := net.Listen("tcp", s.addr)
		if err != nil {
			logging.LogBroadcastError(s.log, fmt.Errorf("listen %s: %w", s.addr, err))
			if !sleepCtx(ctx, reconnectBackoff) {
				return
			}
			continue
		}
		s.serveListener(ctx, ln)
		ln.Close()
	}
}

// serveListener accepts and serves clients sequentially until ctx is
// cancelled or Accept fails outright, in which case the caller re-listens.
func (s *Server) serveListener(ctx context.Context, ln net.Listener) {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.LogBroadcastError(s.log, err)
			return
		}
		s.serveClient(ctx, conn)
		if ctx.Err() != nil {
			return
		}
	}
}

// serveClient holds conn open, emitting a packet on every position update
// from the pipeline until the subscription closes, ctx is cancelled, or a
// write fails.
func (s *Server) serveClient(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	updates, unsubscribe := s.pipe.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			packet := encodePacket(update)
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if _, err := conn.Write(packet); err != nil {
				logging.LogBroadcastError(s.log, err)
				return
			}
			logging.LogBroadcastUpdate(s.log, update.RA, update.Dec)
		}
	}
}

// encodePacket builds the 24-byte Stellarium telescope-control packet:
// size(i16=24) | type(i16=0) | time_us(i64) | ra_int(u32) | dec_int(i32) | status(i32=0).
func encodePacket(update pipeline.PositionUpdate) []byte {
	buf := make([]byte, packetSize)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(packetSize))
	binary.LittleEndian.PutUint16(buf[2:4], 0)
	binary.LittleEndian.PutUint64(buf[4:12], uint64(update.Timestamp.UnixMicro()))

	raHours := update.RA / 15.0
	raInt := uint32(math.Round(raHours * (4294967296.0 / 24.0)))
	binary.LittleEndian.PutUint32(buf[12:16], raInt)

	decInt := int32(math.Round(update.Dec * (1073741824.0 / 90.0)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(decInt))

	binary.LittleEndian.PutUint32(buf[20:24], 0)
	return buf
}

// sleepCtx sleeps for d or returns early (false) if ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
