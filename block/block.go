// Package block implements the self-verifying Block aggregate: a
// header, an interlink of ancestor hashes, and a body of transactions,
// together with the succession predicate and the difficulty-aware
// InterlinkUpdate that keeps succinct proofs of work valid across
// retargets.
package block

import (
	"github.com/holiman/uint256"

	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/logx"
	"github.com/icryptix/core/policy"
	"github.com/icryptix/core/serial"
)

// Block is the triple (header, interlink, body). Invariants are
// enforced by Verify, not by construction.
type Block struct {
	Header    Header
	Interlink Interlink
	Body      Body
}

// SerializedSize is the exact wire length of Serialize's output.
func (b *Block) SerializedSize() int {
	return b.Header.SerializedSize() + b.Interlink.SerializedSize() + b.Body.SerializedSize()
}

// Serialize writes header || interlink || body.
func (b *Block) Serialize() []byte {
	buf := serial.NewWriteBuffer(b.SerializedSize())
	buf.WriteBytes(b.Header.Serialize())
	buf.WriteBytes(b.Interlink.Serialize())
	buf.WriteBytes(b.Body.Serialize())
	return buf.Bytes()
}

// Unserialize reads a Block from raw bytes.
func Unserialize(raw []byte) (*Block, error) {
	buf := serial.NewBuffer(raw)

	header, err := UnserializeHeader(buf)
	if err != nil {
		return nil, err
	}
	interlink, err := UnserializeInterlink(buf)
	if err != nil {
		return nil, err
	}
	body, err := UnserializeBody(buf)
	if err != nil {
		return nil, err
	}

	return &Block{Header: header, Interlink: interlink, Body: body}, nil
}

// Hash is the block's identifying hash: its header's hash.
func (b *Block) Hash() hashid.Hash {
	return b.Header.Hash()
}

// Verify runs every §4.6 check in order and fails closed on the first
// violation, logging which check failed.
func (b *Block) Verify() bool {
	const category = "BLOCK:VERIFY"

	if b.SerializedSize() > int(policy.BlockSizeMax) {
		logx.ValidationFailed(category, "serialized size exceeds BLOCK_SIZE_MAX")
		return false
	}

	seenSenders := make(map[string]struct{}, len(b.Body.Transactions))
	for _, tx := range b.Body.Transactions {
		key := string(tx.SenderPubKey)
		if _, dup := seenSenders[key]; dup {
			logx.ValidationFailed(category, "duplicate sender public key in one block")
			return false
		}
		seenSenders[key] = struct{}{}
	}

	for _, tx := range b.Body.Transactions {
		if tx.RecipientAddr.Equal(tx.GetSenderAddr()) {
			logx.ValidationFailed(category, "transaction recipient equals sender")
			return false
		}
	}

	if !b.Header.VerifyProofOfWork() {
		logx.ValidationFailed(category, "proof of work does not meet target")
		return false
	}

	if !b.Header.BodyHash.Equal(b.Body.Hash()) {
		logx.ValidationFailed(category, "body hash mismatch")
		return false
	}

	if !b.Header.InterlinkHash.Equal(b.Interlink.Hash()) {
		logx.ValidationFailed(category, "interlink hash mismatch")
		return false
	}

	for _, tx := range b.Body.Transactions {
		if !tx.VerifySignature() {
			logx.ValidationFailed(category, "transaction signature invalid")
			return false
		}
	}

	return true
}

// IsSuccessorOf reports whether b is the direct, valid child of prev.
// Check 4 asks prev for the interlink it expects its child to have
// inherited under b's own (possibly retargeted) difficulty.
func (b *Block) IsSuccessorOf(prev *Block) bool {
	const category = "BLOCK:SUCCESSOR"

	if b.Header.Height != prev.Header.Height+1 {
		logx.ValidationFailed(category, "height is not parent height + 1")
		return false
	}
	if b.Header.Timestamp < prev.Header.Timestamp {
		logx.ValidationFailed(category, "timestamp precedes parent")
		return false
	}
	if !b.Header.PrevHash.Equal(prev.Hash()) {
		logx.ValidationFailed(category, "prevHash does not reference parent")
		return false
	}

	expected := prev.NextInterlink(b.Header.Target())
	if !b.Header.InterlinkHash.Equal(expected.Hash()) {
		logx.ValidationFailed(category, "interlinkHash does not match parent's retargeted interlink")
		return false
	}
	return true
}

// NextInterlink computes the difficulty-aware InterlinkUpdate a child
// mined against nextTarget is expected to inherit from b.
func (b *Block) NextInterlink(nextTarget *uint256.Int) Interlink {
	h := b.Hash()
	hn := GetTargetHeight(nextTarget)
	hCur := GetTargetHeight(b.Header.Target())

	depth := 0
	for i := uint32(1); i <= hn; i++ {
		levelHeight := hn - i
		if !IsProofOfWork(h, TargetForHeight(levelHeight)) {
			break
		}
		depth++
	}

	if depth == 0 && hCur == hn && b.Interlink.Len() > 0 && b.Interlink.Hashes[0] == GenesisHash() {
		return b.Interlink
	}

	newHashes := make([]hashid.Hash, 0, 1+depth+b.Interlink.Len())
	newHashes = append(newHashes, GenesisHash())
	for i := 0; i < depth; i++ {
		newHashes = append(newHashes, h)
	}

	// A negative tailStart appends no tail at all rather than being
	// clamped to 0. A tailStart of exactly 0 appends the whole current
	// interlink, its slot 0 included, after the GenesisHash() already at
	// newHashes[0].
	offset := int(hCur) - int(hn)
	tailStart := depth + offset + 1
	if tailStart >= 0 && tailStart < b.Interlink.Len() {
		newHashes = append(newHashes, b.Interlink.Hashes[tailStart:]...)
	}

	return Interlink{Hashes: newHashes}
}
