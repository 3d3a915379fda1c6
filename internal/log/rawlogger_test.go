package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrofold/keyscan/feed"
)

func TestPacketLoggerDecodesFrames(t *testing.T) {
	var buf bytes.Buffer
	l := NewRaw(&buf)

	l.Packet(true, []byte{feed.PacketTransition, 0x04, feed.FlagDown})
	l.Packet(false, []byte{feed.PacketScanEnd, 0x7f, 0x00})

	out := buf.String()
	assert.Contains(t, out, "-> 01 04 01  transition")
	assert.Contains(t, out, "<- 83 7f 00  scan-end")
}

func TestPacketLoggerUnknownType(t *testing.T) {
	var buf bytes.Buffer
	NewRaw(&buf).Packet(true, []byte{0xEE, 0x00, 0x00})
	assert.Contains(t, buf.String(), "unknown")
}

func TestPacketLoggerNilWriter(t *testing.T) {
	l := NewRaw(nil)
	// Must be a safe no-op.
	l.Packet(true, []byte{feed.PacketChar, 'a', 0x00})
	l.Packet(false, nil)
}
