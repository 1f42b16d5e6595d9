package block_test

import (
	"testing"
	"time"

	lndclock "github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/icryptix/core/block"
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/policy"
)

func TestGenesisInterlinkCarriesNullHashAtSlotZero(t *testing.T) {
	require.Equal(t, 1, block.GENESIS.Interlink.Len())
	require.True(t, block.GENESIS.Interlink.Hashes[0].IsNull())
}

func TestGenesisPrevHashIsNull(t *testing.T) {
	require.Equal(t, hashid.NullHash, block.GENESIS.Header.PrevHash)
}

func TestGenesisHashIsStable(t *testing.T) {
	require.Equal(t, block.GENESIS.Hash(), block.GenesisHash())
	require.Equal(t, block.GenesisHash(), block.GenesisHash())
}

// spec.md §4.6 states GENESIS carries difficulty 1, which only holds at
// policy.MinCompactTarget (maxTarget itself). GenesisCompactTarget is
// deliberately looser so genesis never needs a real nonce search (see
// DESIGN.md's Open Question #2), so this pins the actual, diverging
// value rather than leaving the mismatch unasserted.
func TestGenesisDifficultyDivergesFromSpecLiteralOne(t *testing.T) {
	d := block.GENESIS.Header.Difficulty()
	require.Less(t, d, 1.0)
	require.InEpsilon(t, 2.33e-10, d, 0.01)
}

func TestAssembleGenesisUsesFixedTimestampWhenSet(t *testing.T) {
	testClock := lndclock.NewTestClock(time.Unix(999, 0))
	literals := policy.DefaultGenesis()

	g, err := block.AssembleGenesis(testClock, literals)
	require.NoError(t, err)
	require.EqualValues(t, literals.Timestamp, g.Header.Timestamp)
}

func TestAssembleGenesisFallsBackToClockWhenTimestampUnset(t *testing.T) {
	fixed := time.Unix(1234567890, 0)
	testClock := lndclock.NewTestClock(fixed)

	literals := policy.DefaultGenesis()
	literals.Timestamp = 0

	g, err := block.AssembleGenesis(testClock, literals)
	require.NoError(t, err)
	require.EqualValues(t, fixed.Unix(), g.Header.Timestamp)
}

func TestAssembleGenesisRejectsMalformedMinerLiteral(t *testing.T) {
	literals := policy.DefaultGenesis()
	literals.MinerBase58 = "not a valid base58 address"

	_, err := block.AssembleGenesis(block.DefaultClock, literals)
	require.Error(t, err)
}
