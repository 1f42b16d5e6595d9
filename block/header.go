package block

import (
	"github.com/holiman/uint256"

	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
)

// HeaderSize is the exact number of bytes BlockHeader.Serialize writes.
const HeaderSize = 32 + 32 + 32 + 32 + 4 + 4 + 4 + 4

// Header is the immutable tuple identifying a block and committing to
// its interlink and body.
type Header struct {
	PrevHash      hashid.Hash
	InterlinkHash hashid.Hash
	BodyHash      hashid.Hash
	AccountsHash  hashid.Hash
	NBits         uint32
	Height        uint32
	Timestamp     uint32
	Nonce         uint32
}

// Serialize writes the header's fields in declaration order.
func (h Header) Serialize() []byte {
	buf := serial.NewWriteBuffer(HeaderSize)
	buf.WriteBytes(h.PrevHash[:])
	buf.WriteBytes(h.InterlinkHash[:])
	buf.WriteBytes(h.BodyHash[:])
	buf.WriteBytes(h.AccountsHash[:])
	buf.WriteU32(h.NBits)
	buf.WriteU32(h.Height)
	buf.WriteU32(h.Timestamp)
	buf.WriteU32(h.Nonce)
	return buf.Bytes()
}

// SerializedSize is the exact wire length of Serialize's output.
func (h Header) SerializedSize() int {
	return HeaderSize
}

// UnserializeHeader reads a Header from buf in the same field order
// Serialize writes them.
func UnserializeHeader(buf *serial.Buffer) (Header, error) {
	var h Header
	var err error

	readHash := func() hashid.Hash {
		if err != nil {
			return hashid.Hash{}
		}
		var raw []byte
		raw, err = buf.ReadBytes(hashid.HashSize)
		if err != nil {
			return hashid.Hash{}
		}
		var out hashid.Hash
		copy(out[:], raw)
		return out
	}

	h.PrevHash = readHash()
	h.InterlinkHash = readHash()
	h.BodyHash = readHash()
	h.AccountsHash = readHash()
	if err != nil {
		return Header{}, err
	}

	if h.NBits, err = buf.ReadU32(); err != nil {
		return Header{}, err
	}
	if h.Height, err = buf.ReadU32(); err != nil {
		return Header{}, err
	}
	if h.Timestamp, err = buf.ReadU32(); err != nil {
		return Header{}, err
	}
	if h.Nonce, err = buf.ReadU32(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Hash is the header's identifying hash: the block-content hash
// primitive over its serialized form.
func (h Header) Hash() hashid.Hash {
	return hashid.HashBytes(h.Serialize())
}

// Target expands NBits into a full 256-bit target.
func (h Header) Target() *uint256.Int {
	return CompactToTarget(h.NBits)
}

// Difficulty reports the human-readable maxTarget/target ratio.
func (h Header) Difficulty() float64 {
	return Difficulty(h.Target())
}

// VerifyProofOfWork reports whether Hash() meets Target().
func (h Header) VerifyProofOfWork() bool {
	return IsProofOfWork(h.Hash(), h.Target())
}
