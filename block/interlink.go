package block

import (
	"github.com/icryptix/core/coreerrors"
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
)

// Interlink is the ordered vector of ancestor hashes a header commits
// to. Position 0 holds the genesis hash, except in GENESIS's own
// interlink, which carries the null hash there.
type Interlink struct {
	Hashes []hashid.Hash
}

// NewInterlink builds an Interlink with genesisHash at position 0
// followed by rest in order. It does not check whether rest already
// contains genesisHash.
func NewInterlink(genesisHash hashid.Hash, rest ...hashid.Hash) Interlink {
	hashes := make([]hashid.Hash, 0, len(rest)+1)
	hashes = append(hashes, genesisHash)
	hashes = append(hashes, rest...)
	return Interlink{Hashes: hashes}
}

// SerializedSize is the exact wire length of Serialize's output.
func (il Interlink) SerializedSize() int {
	return 1 + len(il.Hashes)*hashid.HashSize
}

// Serialize writes a u8 length followed by L fixed-size hashes.
func (il Interlink) Serialize() []byte {
	buf := serial.NewWriteBuffer(il.SerializedSize())
	buf.WriteU8(uint8(len(il.Hashes)))
	for _, h := range il.Hashes {
		buf.WriteBytes(h[:])
	}
	return buf.Bytes()
}

// UnserializeInterlink reads an Interlink from buf in Serialize's field order.
func UnserializeInterlink(buf *serial.Buffer) (Interlink, error) {
	length, err := buf.ReadU8()
	if err != nil {
		return Interlink{}, err
	}
	if length == 0 {
		return Interlink{}, coreerrors.New(coreerrors.ErrCodeMalformedBlock, "interlink must contain at least the genesis slot")
	}

	hashes := make([]hashid.Hash, 0, length)
	for i := uint8(0); i < length; i++ {
		raw, err := buf.ReadBytes(hashid.HashSize)
		if err != nil {
			return Interlink{}, err
		}
		var h hashid.Hash
		copy(h[:], raw)
		hashes = append(hashes, h)
	}
	return Interlink{Hashes: hashes}, nil
}

// Hash commits to the ordered list of ancestor hashes.
func (il Interlink) Hash() hashid.Hash {
	return hashid.HashBytes(il.Serialize())
}

// Equal reports element-wise equality.
func (il Interlink) Equal(other Interlink) bool {
	if len(il.Hashes) != len(other.Hashes) {
		return false
	}
	for i := range il.Hashes {
		if il.Hashes[i] != other.Hashes[i] {
			return false
		}
	}
	return true
}

// Len returns the number of entries in the interlink.
func (il Interlink) Len() int {
	return len(il.Hashes)
}
