package hashid

import (
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/mr-tron/base58"
)

// AddressSize is the width of an Address in bytes.
const AddressSize = 20

// Address is a fixed 20-byte value derived from a public key.
type Address [AddressSize]byte

// NullAddress is the all-zero address.
var NullAddress = Address{}

// DeriveAddress hashes a public key down to a 20-byte address: the
// trailing 20 bytes of the blake256 digest of the raw public key bytes.
func DeriveAddress(pubKey []byte) Address {
	digest := blake256.Sum256(pubKey)
	var addr Address
	copy(addr[:], digest[len(digest)-AddressSize:])
	return addr
}

// Equal reports byte-wise equality.
func (a Address) Equal(other Address) bool {
	return a == other
}

// Bytes returns a copy of the underlying bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

// String renders a as base58, matching the node's address display convention.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// ParseAddress decodes a base58 string into an Address.
func ParseAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, err
	}
	var a Address
	if len(raw) != AddressSize {
		return Address{}, lengthError{want: AddressSize, got: len(raw)}
	}
	copy(a[:], raw)
	return a, nil
}
