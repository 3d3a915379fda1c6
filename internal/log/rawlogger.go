package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/retrofold/keyscan/feed"
)

// RawLogger records feed protocol traffic at the wire level, one line per
// packet.
type RawLogger interface {
	// Packet logs one 3-byte frame. fromClient is true for input packets
	// (client to server), false for device reports going back.
	Packet(fromClient bool, frame []byte)
}

// NewRaw returns a RawLogger writing to w. A nil writer yields a logger
// that discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &packetLogger{w: w}
}

type packetLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *packetLogger) Packet(fromClient bool, frame []byte) {
	if l.w == nil || len(frame) == 0 {
		return
	}

	dir := "<-"
	if fromClient {
		dir = "->"
	}
	line := fmt.Sprintf("%s %s % 02x  %s\n",
		time.Now().Format("15:04:05.000"), dir, frame, packetName(frame[0]))

	l.mu.Lock()
	_, _ = io.WriteString(l.w, line)
	l.mu.Unlock()
}

func packetName(t uint8) string {
	switch t {
	case feed.PacketTransition:
		return "transition"
	case feed.PacketSynthetic:
		return "synthetic"
	case feed.PacketChar:
		return "char"
	case feed.PacketIndicators:
		return "indicators"
	case feed.PacketScanKey:
		return "scan-key"
	case feed.PacketScanEnd:
		return "scan-end"
	default:
		return "unknown"
	}
}
