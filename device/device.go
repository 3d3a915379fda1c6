// Package device provides common interfaces for emulated port-mapped
// peripherals.
package device

// PortDevice is the minimal interface a peripheral exposes to the emulated
// machine's I/O bus: byte-wide reads and writes at device-specific port
// numbers. Accesses to ports a device does not claim return zero and are
// otherwise ignored.
type PortDevice interface {
	ReadPort(port uint8) uint8
	WritePort(port uint8, v uint8)
}

// Snapshotter is implemented by devices whose register state participates in
// machine save/restore. Restore must validate the snapshot shape before
// mutating any state; a failed restore leaves the device unchanged.
type Snapshotter interface {
	Snapshot() []byte
	Restore(data []byte) error
}
