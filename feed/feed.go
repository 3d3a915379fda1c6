// Package feed implements the keyscan network feed protocol: a platform
// input adapter that delivers key transitions to a served keyboard instance
// over TCP and carries scan reports and indicator changes back.
//
// Framing is fixed-size: every packet is 3 bytes in both directions,
// [type, a, b], so stream assembly is trivial and a dropped byte cannot
// desynchronize more than one read.
package feed

import "io"

// Packet types. Client-to-server types deliver input; server-to-client
// types report device output.
const (
	// PacketTransition delivers a raw key transition: a = raw code,
	// b = flags (FlagDown, FlagRight).
	PacketTransition uint8 = 0x01
	// PacketSynthetic presses a key with no physical release: a = raw code.
	PacketSynthetic uint8 = 0x02
	// PacketChar delivers character-level evidence: a = ASCII character.
	PacketChar uint8 = 0x03

	// PacketIndicators reports an indicator change: a = LED bits,
	// b = nonzero when the click bit is set.
	PacketIndicators uint8 = 0x81
	// PacketScanKey reports one scanned key address: a = address.
	PacketScanKey uint8 = 0x82
	// PacketScanEnd marks the end of one scan pass.
	PacketScanEnd uint8 = 0x83
)

// Transition flags.
const (
	FlagDown  uint8 = 0x01
	FlagRight uint8 = 0x02
)

// PacketLen is the fixed wire size of every packet.
const PacketLen = 3

// Packet is one 3-byte feed protocol unit.
type Packet struct {
	Type uint8
	A    uint8
	B    uint8
}

// MarshalBinary encodes the packet to its 3-byte wire form.
func (p Packet) MarshalBinary() ([]byte, error) {
	return []byte{p.Type, p.A, p.B}, nil
}

// UnmarshalBinary decodes a 3-byte wire packet.
func (p *Packet) UnmarshalBinary(data []byte) error {
	if len(data) < PacketLen {
		return io.ErrUnexpectedEOF
	}
	p.Type = data[0]
	p.A = data[1]
	p.B = data[2]
	return nil
}

// ReadPacket reads exactly one packet from r.
func ReadPacket(r io.Reader) (Packet, error) {
	var buf [PacketLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Packet{}, err
	}
	var p Packet
	_ = p.UnmarshalBinary(buf[:])
	return p, nil
}

// WritePacket writes one packet to w.
func WritePacket(w io.Writer, p Packet) error {
	b, _ := p.MarshalBinary()
	_, err := w.Write(b)
	return err
}
