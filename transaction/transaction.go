// Package transaction implements the external Transaction contract the
// block-validation core consumes: a sender public key, a recipient
// address, and a signature the core can verify without knowing how the
// transaction's business fields are spent downstream.
package transaction

import (
	"crypto/ed25519"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
)

// Transaction carries a sender's ed25519 public key, the recipient it
// pays, and the signature over its own serialized form. The signing
// scheme is ed25519 deliberately: the core treats cryptographic
// primitives as borrowed collaborators, not something to re-implement.
type Transaction struct {
	SenderPubKey  ed25519.PublicKey
	RecipientAddr hashid.Address
	Amount        *uint256.Int
	Nonce         uint64
	Timestamp     uint32
	Signature     []byte
}

// SerializedSize is the exact wire length of Serialize's output.
func (tx *Transaction) SerializedSize() int {
	amount := tx.amountOrZero()
	return ed25519.PublicKeySize + hashid.AddressSize + len(amount.Bytes()) + 1 + 8 + 4 + 1 + len(tx.Signature)
}

func (tx *Transaction) amountOrZero() *uint256.Int {
	if tx.Amount == nil {
		return uint256.NewInt(0)
	}
	return tx.Amount
}

// Serialize writes the transaction's fields as a flat byte string: the
// sender pubkey and recipient address fixed-width, the amount as a
// length-prefixed big-endian magnitude, nonce and timestamp fixed
// width, and the signature length-prefixed.
func (tx *Transaction) Serialize() []byte {
	amount := tx.amountOrZero().Bytes()

	buf := serial.NewWriteBuffer(tx.SerializedSize())
	buf.WriteBytes(tx.SenderPubKey)
	buf.WriteBytes(tx.RecipientAddr[:])
	buf.WriteU8(uint8(len(amount)))
	buf.WriteBytes(amount)
	buf.WriteU64(tx.Nonce)
	buf.WriteU32(tx.Timestamp)
	buf.WriteU8(uint8(len(tx.Signature)))
	buf.WriteBytes(tx.Signature)
	return buf.Bytes()
}

// signingPayload is Serialize with an empty signature field: what
// VerifySignature actually checks the signature over.
func (tx *Transaction) signingPayload() []byte {
	clone := *tx
	clone.Signature = nil
	return clone.Serialize()
}

// Unserialize reads a Transaction from buf in Serialize's field order.
func Unserialize(buf *serial.Buffer) (*Transaction, error) {
	tx := &Transaction{}

	pub, err := buf.ReadBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	tx.SenderPubKey = ed25519.PublicKey(pub)

	recipient, err := buf.ReadBytes(hashid.AddressSize)
	if err != nil {
		return nil, err
	}
	copy(tx.RecipientAddr[:], recipient)

	amountLen, err := buf.ReadU8()
	if err != nil {
		return nil, err
	}
	amountBytes, err := buf.ReadBytes(int(amountLen))
	if err != nil {
		return nil, err
	}
	tx.Amount = new(uint256.Int).SetBytes(amountBytes)

	if tx.Nonce, err = buf.ReadU64(); err != nil {
		return nil, err
	}
	if tx.Timestamp, err = buf.ReadU32(); err != nil {
		return nil, err
	}
	sigLen, err := buf.ReadU8()
	if err != nil {
		return nil, err
	}
	if tx.Signature, err = buf.ReadBytes(int(sigLen)); err != nil {
		return nil, err
	}

	return tx, nil
}

// GetSenderAddr is the pure derivation of the sender's address from its
// public key.
func (tx *Transaction) GetSenderAddr() hashid.Address {
	return hashid.DeriveAddress(tx.SenderPubKey)
}

// VerifySignature checks Signature against the signing payload using
// SenderPubKey.
func (tx *Transaction) VerifySignature() bool {
	if len(tx.SenderPubKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(tx.SenderPubKey, tx.signingPayload(), tx.Signature)
}

// Sign fills in Signature using priv. priv must correspond to SenderPubKey.
func (tx *Transaction) Sign(priv ed25519.PrivateKey) {
	tx.Signature = ed25519.Sign(priv, tx.signingPayload())
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("tx{from=%s to=%s amount=%s nonce=%d}",
		tx.GetSenderAddr(), tx.RecipientAddr, tx.amountOrZero().String(), tx.Nonce)
}
