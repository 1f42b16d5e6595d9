// Package hashid implements the fixed-width opaque identifiers shared by
// every record in the serialization framework: block-content hashes and
// derived account addresses.
package hashid

import (
	"encoding/base64"

	"github.com/decred/dcrd/crypto/blake256"
)

// HashSize is the width of a Hash in bytes.
const HashSize = 32

// Hash is a fixed 32-byte opaque identifier. The zero value is the null
// hash, used as the predecessor of genesis.
type Hash [HashSize]byte

// NullHash is the distinguished all-zero hash.
var NullHash = Hash{}

// HashBytes commits arbitrary bytes to a Hash using the block-content
// hash primitive (blake256, not the AES/KDF machinery elsewhere in the
// module).
func HashBytes(data []byte) Hash {
	return Hash(blake256.Sum256(data))
}

// Equal reports byte-wise equality.
func (h Hash) Equal(other Hash) bool {
	return h == other
}

// IsNull reports whether h is the all-zero hash.
func (h Hash) IsNull() bool {
	return h == NullHash
}

// Bytes returns a copy of the underlying bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// String renders h as base64, per the wire/record convention for Hash I/O.
func (h Hash) String() string {
	return base64.StdEncoding.EncodeToString(h[:])
}

// ParseHash decodes a base64 string into a Hash.
func ParseHash(s string) (Hash, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Hash{}, err
	}
	var h Hash
	if len(raw) != HashSize {
		return Hash{}, errInvalidHashLength(len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

type lengthError struct {
	want, got int
}

func (e lengthError) Error() string {
	return "hashid: unexpected decoded length"
}

func errInvalidHashLength(got int) error {
	return lengthError{want: HashSize, got: got}
}
