package broadcast

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"skyscope/internal/camera"
	"skyscope/internal/logging"
	"skyscope/internal/obscontext"
	"skyscope/internal/pipeline"
	"skyscope/internal/solver"
	"skyscope/internal/transform"
)

func TestEncodePacketLayout(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	update := pipeline.PositionUpdate{RA: 180, Dec: 45, Timestamp: ts}
	buf := encodePacket(update)

	if len(buf) != packetSize {
		t.Fatalf("expected %d bytes, got %d", packetSize, len(buf))
	}
	if size := binary.LittleEndian.Uint16(buf[0:2]); size != 24 {
		t.Fatalf("expected size field 24, got %d", size)
	}
	if typ := binary.LittleEndian.Uint16(buf[2:4]); typ != 0 {
		t.Fatalf("expected type field 0, got %d", typ)
	}
	if us := int64(binary.LittleEndian.Uint64(buf[4:12])); us != ts.UnixMicro() {
		t.Fatalf("expected time_us %d, got %d", ts.UnixMicro(), us)
	}

	// RA 180deg = 12h; ra_int = round(12 * 2^32/24) = 2^31.
	wantRA := uint32(1) << 31
	if ra := binary.LittleEndian.Uint32(buf[12:16]); ra != wantRA {
		t.Fatalf("expected ra_int %d, got %d", wantRA, ra)
	}

	// Dec 45deg = round(45 * 2^30/90) = 2^29.
	wantDec := int32(1) << 29
	if dec := int32(binary.LittleEndian.Uint32(buf[16:20])); dec != wantDec {
		t.Fatalf("expected dec_int %d, got %d", wantDec, dec)
	}
	if status := int32(binary.LittleEndian.Uint32(buf[20:24])); status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}
}

func TestEncodePacketNegativeDec(t *testing.T) {
	update := pipeline.PositionUpdate{RA: 0, Dec: -30, Timestamp: time.Now()}
	buf := encodePacket(update)
	dec := int32(binary.LittleEndian.Uint32(buf[16:20]))
	if dec >= 0 {
		t.Fatalf("expected negative dec_int, got %d", dec)
	}
}

func testContext() *obscontext.Context {
	env := obscontext.NewEnvironment(obscontext.Location{LatDeg: 40, LonDeg: -105}, 10)
	return obscontext.New(env, obscontext.DefaultOptics())
}

func tinyFrame() obscontext.Frame {
	return obscontext.Frame{Pixels: make([]byte, 4), Width: 2, Height: 2, Channels: 1, CapturedAt: time.Now()}
}

// TestServerStreamsPacketToSingleClient exercises the full path: a running
// pipeline feeding the broadcast server over a real loopback TCP connection.
func TestServerStreamsPacketToSingleClient(t *testing.T) {
	cam := camera.NewFake(tinyFrame())
	fakeSolver := solver.NewFake(obscontext.SolveResult{RA: 279.2437, Dec: 38.7861})
	log := logging.New("error", "text")
	p := pipeline.New(log, cam, fakeSolver, testContext(), transform.StandardAltAz{}, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("start pipeline: %v", err)
	}
	defer p.Stop(context.Background())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &Server{log: log, pipe: p, addr: ""}
	go srv.serveListener(ctx, ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	buf := make([]byte, packetSize)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("read packet: %v", err)
	}
	if size := binary.LittleEndian.Uint16(buf[0:2]); size != packetSize {
		t.Fatalf("expected packet size 24, got %d", size)
	}
}

func TestSleepCtxReturnsFalseOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sleepCtx(ctx, time.Second) {
		t.Fatal("expected sleepCtx to return false for a cancelled context")
	}
}
