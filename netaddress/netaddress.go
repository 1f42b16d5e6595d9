// Package netaddress implements the canonical wire serialization of a
// peer network endpoint, using the same SerialBuffer framework every
// other record in this module is built on.
package netaddress

import (
	"github.com/icryptix/core/serial"
)

// NetAddress is a pure value record identifying a peer endpoint.
// Equality ignores Timestamp: addresses identify a peer, not a moment.
type NetAddress struct {
	Services  uint32
	Timestamp uint64
	Host      string
	Port      uint16
	SignalID  uint32
}

// fixedFieldBytes is every field except the variable-length host:
// services(4) + timestamp(8) + port(2) + signalId(4).
const fixedFieldBytes = 4 + 8 + 2 + 4

// SerializedSize is 19 + len(Host).
func (a NetAddress) SerializedSize() int {
	return fixedFieldBytes + serial.VarLenStringSize(a.Host)
}

// Serialize writes fields in the order: services, timestamp, host as a
// VarLenString, port, signalId.
func (a NetAddress) Serialize() []byte {
	buf := serial.NewWriteBuffer(a.SerializedSize())
	buf.WriteU32(a.Services)
	buf.WriteU64(a.Timestamp)
	buf.WriteVarLenString(a.Host)
	buf.WriteU16(a.Port)
	buf.WriteU32(a.SignalID)
	return buf.Bytes()
}

// Unserialize reads a NetAddress from raw bytes in Serialize's field order.
func Unserialize(raw []byte) (NetAddress, error) {
	buf := serial.NewBuffer(raw)
	return UnserializeFrom(buf)
}

// UnserializeFrom reads a NetAddress from an already-positioned buffer,
// for callers framing several records back to back.
func UnserializeFrom(buf *serial.Buffer) (NetAddress, error) {
	var a NetAddress
	var err error

	if a.Services, err = buf.ReadU32(); err != nil {
		return NetAddress{}, err
	}
	if a.Timestamp, err = buf.ReadU64(); err != nil {
		return NetAddress{}, err
	}
	if a.Host, err = buf.ReadVarLenString(); err != nil {
		return NetAddress{}, err
	}
	if a.Port, err = buf.ReadU16(); err != nil {
		return NetAddress{}, err
	}
	if a.SignalID, err = buf.ReadU32(); err != nil {
		return NetAddress{}, err
	}

	return a, nil
}

// Equal compares every field except Timestamp.
func (a NetAddress) Equal(other NetAddress) bool {
	return a.Services == other.Services &&
		a.Host == other.Host &&
		a.Port == other.Port &&
		a.SignalID == other.SignalID
}
