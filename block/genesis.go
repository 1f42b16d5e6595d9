package block

import (
	"github.com/icryptix/core/hashid"
	"github.com/icryptix/core/policy"
)

// GENESIS is the process-wide genesis block constant, bound once at
// package initialization for synchronous, lock-free access from any
// goroutine. Its timestamp is the compiled-in policy literal, so it
// does not depend on a Clock; AssembleGenesis takes the seam for
// callers (and tests) that want to stamp an alternate genesis from a
// deterministic or overridden time source instead.
//
// policy.DefaultGenesis's MinerBase58 is derived, not hand-written, so
// it is provably a valid address; a failure here means the compiled-in
// defaults themselves are broken, which is a build-time bug worth a
// panic rather than a silently null-miner genesis.
var GENESIS = mustAssembleGenesis(DefaultClock, policy.DefaultGenesis())

func mustAssembleGenesis(clock Clock, literals policy.GenesisLiterals) *Block {
	b, err := AssembleGenesis(clock, literals)
	if err != nil {
		panic("block: compiled-in genesis literals are invalid: " + err.Error())
	}
	return b
}

// AssembleGenesis builds a genesis block from literals. When
// literals.Timestamp is zero, clock.Now() stamps the header instead of
// the fixed value, letting tests substitute a deterministic
// clock.TestClock rather than depending on wall-clock time. A
// malformed literals.MinerBase58 is reported, not masked: callers that
// load literals from an operator-supplied policy.yml need to see that
// failure rather than get a silently null miner.
func AssembleGenesis(clock Clock, literals policy.GenesisLiterals) (*Block, error) {
	minerAddr, err := hashid.ParseAddress(literals.MinerBase58)
	if err != nil {
		return nil, err
	}

	body := Body{MinerAddr: minerAddr, Transactions: nil}

	// Genesis has no earlier ancestor to point its mandatory slot 0 at,
	// so its own interlink carries the null hash there. Every later
	// block's interlink instead carries GENESIS.Hash() at slot 0, once
	// that hash is fixed below.
	interlink := NewInterlink(hashid.NullHash)

	timestamp := literals.Timestamp
	if timestamp == 0 {
		timestamp = uint32(clock.Now().Unix())
	}

	header := Header{
		PrevHash:      hashid.NullHash,
		InterlinkHash: interlink.Hash(),
		BodyHash:      body.Hash(),
		AccountsHash:  hashid.NullHash,
		NBits:         literals.NBits,
		Height:        literals.Height,
		Timestamp:     timestamp,
		Nonce:         0,
	}

	return &Block{Header: header, Interlink: interlink, Body: body}, nil
}

// GenesisHash is Block.GENESIS.Hash(), exposed for callers that only
// need the identifying hash.
func GenesisHash() hashid.Hash {
	return GENESIS.Hash()
}
