// Package policy holds the chain-wide constants the block-validation
// core treats as external inputs: the block size ceiling, the legal
// difficulty-target bounds, and the genesis block's literal field
// values. Operator-editable values load from a YAML file the same way
// the node's own genesis.yml does.
package policy

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/icryptix/core/hashid"
)

// BlockSizeMax is the hard byte ceiling for one serialized block.
const BlockSizeMax = 2 * 1024 * 1024

// MinCompactTarget and MaxCompactTarget bound the legal nBits range:
// the easiest and hardest difficulty targets this chain will ever
// encode. Expressed in the exponent+mantissa compact form described in
// the GLOSSARY.
const (
	MinCompactTarget uint32 = 0x1d00ffff // easiest legal runtime target
	MaxCompactTarget uint32 = 0x1b0fffff // hardest legal target bound
)

// GenesisCompactTarget is deliberately looser than MinCompactTarget: with
// no mining loop in this repository (out of scope per spec.md's
// Non-goals), genesis's fixed fields must satisfy proof-of-work without
// a nonce search, so its target covers almost the entire hash space.
// Consequence: GENESIS.Header.Difficulty() is far below the literal 1
// that a mined genesis would carry under MinCompactTarget's difficulty-1
// target, a divergence recorded in DESIGN.md's Open Question #2 for the
// same underlying reason as spec.md §8 scenario 3's hash divergence.
const GenesisCompactTarget uint32 = 0x20ffffff

// GenesisLiterals are the fixed field values Block.GENESIS is built from.
type GenesisLiterals struct {
	Height      uint32
	Timestamp   uint32
	NBits       uint32
	MinerBase58 string
}

// genesisMinerSeed is the fixed pubkey-shaped input the compiled-in
// genesis miner address is derived from. It has no corresponding
// private key; genesis mines no reward anyone can spend.
var genesisMinerSeed = []byte("genesis-miner-has-no-private-key")

// DefaultGenesis returns the compiled-in genesis literals. MinerBase58
// is derived from genesisMinerSeed rather than hand-written, so it is
// always a valid 20-byte address: hashid.DeriveAddress+String can never
// produce a string ParseAddress rejects.
func DefaultGenesis() GenesisLiterals {
	return GenesisLiterals{
		Height:      1,
		Timestamp:   1600000000,
		NBits:       GenesisCompactTarget,
		MinerBase58: hashid.DeriveAddress(genesisMinerSeed).String(),
	}
}

// File mirrors the node's ConfigFile/GenesisConfig split: most
// deployments run on DefaultGenesis, but an operator can override the
// block-size ceiling and genesis fields from a policy.yml.
type File struct {
	Policy struct {
		BlockSizeMax int64 `yaml:"block_size_max"`
		Genesis      struct {
			Height      uint32 `yaml:"height"`
			Timestamp   uint32 `yaml:"timestamp"`
			NBits       uint32 `yaml:"n_bits"`
			MinerBase58 string `yaml:"miner_base58"`
		} `yaml:"genesis"`
	} `yaml:"policy"`
}

// Load reads a policy.yml-shaped file and overlays it onto the compiled
// defaults. A missing path is not an error: callers get DefaultGenesis
// and BlockSizeMax unchanged.
func Load(path string) (int64, GenesisLiterals, error) {
	genesis := DefaultGenesis()
	blockSizeMax := int64(BlockSizeMax)

	if path == "" {
		return blockSizeMax, genesis, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return blockSizeMax, genesis, nil
		}
		return 0, GenesisLiterals{}, err
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return 0, GenesisLiterals{}, err
	}

	if f.Policy.BlockSizeMax > 0 {
		blockSizeMax = f.Policy.BlockSizeMax
	}
	if f.Policy.Genesis.Height > 0 {
		genesis.Height = f.Policy.Genesis.Height
		genesis.Timestamp = f.Policy.Genesis.Timestamp
		genesis.NBits = f.Policy.Genesis.NBits
		genesis.MinerBase58 = f.Policy.Genesis.MinerBase58
	}

	return blockSizeMax, genesis, nil
}
