package block_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/block"
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/policy"
	"github.com/icryptix/core/transaction"
)

func childOf(t *testing.T, parent *block.Block, nBits uint32) *block.Block {
	t.Helper()
	body := block.Body{MinerAddr: hashid.DeriveAddress([]byte("a miner key"))}
	interlink := parent.NextInterlink(block.CompactToTarget(nBits))

	header := block.Header{
		PrevHash:      parent.Hash(),
		InterlinkHash: interlink.Hash(),
		BodyHash:      body.Hash(),
		AccountsHash:  hashid.NullHash,
		NBits:         nBits,
		Height:        parent.Header.Height + 1,
		Timestamp:     parent.Header.Timestamp + 1,
		Nonce:         0,
	}
	return &block.Block{Header: header, Interlink: interlink, Body: body}
}

func TestGenesisVerifies(t *testing.T) {
	require.True(t, block.GENESIS.Verify())
}

func TestBlockRoundTrip(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	raw := child.Serialize()
	require.Equal(t, child.SerializedSize(), len(raw))

	got, err := block.Unserialize(raw)
	require.NoError(t, err)
	require.Equal(t, child.Hash(), got.Hash())
}

func TestChildVerifiesAgainstPermissiveTarget(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	require.True(t, child.Verify())
}

func TestChildIsSuccessorOfGenesis(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	require.True(t, child.IsSuccessorOf(block.GENESIS))
}

func TestIsSuccessorRejectsWrongHeight(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.Height += 1
	require.False(t, child.IsSuccessorOf(block.GENESIS))
}

func TestIsSuccessorRejectsEarlierTimestamp(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.Timestamp = block.GENESIS.Header.Timestamp - 1
	require.False(t, child.IsSuccessorOf(block.GENESIS))
}

func TestIsSuccessorRejectsWrongPrevHash(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.PrevHash = hashid.HashBytes([]byte("not the parent"))
	require.False(t, child.IsSuccessorOf(block.GENESIS))
}

func TestIsSuccessorRejectsStaleInterlinkHash(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.InterlinkHash = hashid.HashBytes([]byte("wrong interlink"))
	require.False(t, child.IsSuccessorOf(block.GENESIS))
}

func TestVerifyRejectsBodyHashMismatch(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.BodyHash = hashid.HashBytes([]byte("tampered body"))
	require.False(t, child.Verify())
}

func TestVerifyRejectsInterlinkHashMismatch(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	child.Header.InterlinkHash = hashid.HashBytes([]byte("tampered interlink"))
	require.False(t, child.Verify())
}

func TestVerifyRejectsOversizedBlock(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)
	perTx := signedTx(t, 1).SerializedSize()
	need := policy.BlockSizeMax/perTx + 1
	for i := 0; i < need; i++ {
		child.Body.Transactions = append(child.Body.Transactions, signedTx(t, 1))
	}
	require.False(t, child.Verify())
}

func TestVerifyRejectsDuplicateSenderPubKey(t *testing.T) {
	child := childOf(t, block.GENESIS, policy.GenesisCompactTarget)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	first := &transaction.Transaction{
		SenderPubKey:  pub,
		RecipientAddr: hashid.DeriveAddress([]byte("recipient one")),
		Amount:        uint256.NewInt(1),
		Nonce:         1,
		Timestamp:     1700000000,
	}
	first.Sign(priv)

	second := &transaction.Transaction{
		SenderPubKey:  pub,
		RecipientAddr: hashid.DeriveAddress([]byte("recipient two")),
		Amount:        uint256.NewInt(2),
		Nonce:         2,
		Timestamp:     1700000000,
	}
	second.Sign(priv)

	child.Body.Transactions = []*transaction.Transaction{first, second}
	child.Header.BodyHash = child.Body.Hash()
	require.False(t, child.Verify())
}

func TestNextInterlinkGenesisSlotAlwaysPresent(t *testing.T) {
	for _, nBits := range []uint32{policy.GenesisCompactTarget, policy.MinCompactTarget, policy.MaxCompactTarget} {
		il := block.GENESIS.NextInterlink(block.CompactToTarget(nBits))
		require.Greater(t, il.Len(), 0)
		require.Equal(t, block.GenesisHash(), il.Hashes[0])
	}
}

func TestNextInterlinkFastPathWhenTargetUnchanged(t *testing.T) {
	heightZeroNBits := block.TargetToCompact(uint256.NewInt(1))
	require.EqualValues(t, 0, block.GetTargetHeight(block.CompactToTarget(heightZeroNBits)))

	parent := childOf(t, block.GENESIS, heightZeroNBits)
	parent.Interlink = block.NewInterlink(block.GenesisHash())

	result := parent.NextInterlink(uint256.NewInt(1))
	require.True(t, result.Equal(parent.Interlink))
}

func TestNextInterlinkSplicesTailOnRetarget(t *testing.T) {
	heightOneNBits := block.TargetToCompact(uint256.NewInt(2))
	require.EqualValues(t, 1, block.GetTargetHeight(block.CompactToTarget(heightOneNBits)))

	hashB := hashid.HashBytes([]byte("ancestor b"))
	hashC := hashid.HashBytes([]byte("ancestor c"))

	parent := childOf(t, block.GENESIS, heightOneNBits)
	parent.Interlink = block.NewInterlink(block.GenesisHash(), hashid.HashBytes([]byte("ancestor a")), hashB, hashC)

	result := parent.NextInterlink(uint256.NewInt(1))
	require.Equal(t, 3, result.Len())
	require.Equal(t, block.GenesisHash(), result.Hashes[0])
	require.Equal(t, hashB, result.Hashes[1])
	require.Equal(t, hashC, result.Hashes[2])
}
