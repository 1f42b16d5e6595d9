package block_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/block"
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/serial"
	"github.com/icryptix/core/transaction"
)

func signedTx(t *testing.T, amount uint64) *transaction.Transaction {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := &transaction.Transaction{
		SenderPubKey:  pub,
		RecipientAddr: hashid.DeriveAddress([]byte("a different recipient entirely")),
		Amount:        uint256.NewInt(amount),
		Nonce:         1,
		Timestamp:     1700000000,
	}
	tx.Sign(priv)
	return tx
}

func TestBodyRoundTripEmpty(t *testing.T) {
	b := block.Body{MinerAddr: hashid.DeriveAddress([]byte("miner"))}
	raw := b.Serialize()
	require.Equal(t, b.SerializedSize(), len(raw))

	got, err := block.UnserializeBody(serial.NewBuffer(raw))
	require.NoError(t, err)
	require.Equal(t, b.MinerAddr, got.MinerAddr)
	require.Empty(t, got.Transactions)
}

func TestBodyRoundTripWithTransactions(t *testing.T) {
	b := block.Body{
		MinerAddr:    hashid.DeriveAddress([]byte("miner")),
		Transactions: []*transaction.Transaction{signedTx(t, 100), signedTx(t, 200)},
	}
	raw := b.Serialize()
	require.Equal(t, b.SerializedSize(), len(raw))

	got, err := block.UnserializeBody(serial.NewBuffer(raw))
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)
	require.Equal(t, b.Transactions[0].Serialize(), got.Transactions[0].Serialize())
	require.Equal(t, b.Transactions[1].Serialize(), got.Transactions[1].Serialize())
}

func TestBodyHashChangesWithTransactions(t *testing.T) {
	base := block.Body{MinerAddr: hashid.DeriveAddress([]byte("miner"))}
	withTx := block.Body{
		MinerAddr:    base.MinerAddr,
		Transactions: []*transaction.Transaction{signedTx(t, 1)},
	}
	require.NotEqual(t, base.Hash(), withTx.Hash())
}
