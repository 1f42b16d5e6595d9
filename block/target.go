package block

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/icryptix/core/hashid"
)

// CompactToTarget expands a 4-byte compact encoding (1 exponent byte,
// 3 mantissa bytes) into a full 256-bit target.
func CompactToTarget(nBits uint32) *uint256.Int {
	exponent := nBits >> 24
	mantissa := nBits & 0x00ffffff

	target := uint256.NewInt(uint64(mantissa))
	switch {
	case exponent > 3:
		target = new(uint256.Int).Lsh(target, uint(8*(exponent-3)))
	case exponent < 3:
		target = new(uint256.Int).Rsh(target, uint(8*(3-exponent)))
	}
	return target
}

// TargetToCompact re-encodes a 256-bit target into the minimal 4-byte
// compact form, the inverse of CompactToTarget.
func TargetToCompact(target *uint256.Int) uint32 {
	if target.IsZero() {
		return 0
	}

	raw := target.Bytes() // big-endian, no leading zeros
	exponent := len(raw)

	var mantissa uint32
	switch {
	case exponent <= 3:
		// raw is shorter than the 3-byte mantissa field: left-align it
		// so CompactToTarget's Rsh(8*(3-exponent)) recovers the same
		// value, the inverse of how a left-shift recombines the
		// exponent > 3 case below.
		var padded [3]byte
		copy(padded[:exponent], raw)
		mantissa = uint32(padded[0])<<16 | uint32(padded[1])<<8 | uint32(padded[2])
	default:
		mantissa = uint32(raw[0])<<16 | uint32(raw[1])<<8 | uint32(raw[2])
	}

	// CompactToTarget reads all 24 mantissa bits as magnitude (there is no
	// sign bit), so the mantissa is kept as-is even when its top bit is set.
	return uint32(exponent)<<24 | mantissa
}

// GetTargetHeight computes ceil(log2(target)): BitLen(target-1), with
// GetTargetHeight(0) defined as 0.
func GetTargetHeight(target *uint256.Int) uint32 {
	if target.IsZero() || target.Eq(uint256.NewInt(1)) {
		return 0
	}
	minusOne := new(uint256.Int).Sub(target, uint256.NewInt(1))
	return uint32(minusOne.BitLen())
}

// TargetForHeight returns 2^height as a target, the inverse direction
// used throughout InterlinkUpdate (§4.6 of the core spec).
func TargetForHeight(height uint32) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(height))
}

// IsProofOfWork reports whether hash, read big-endian, is numerically
// at or below target.
func IsProofOfWork(hash hashid.Hash, target *uint256.Int) bool {
	asInt := new(uint256.Int).SetBytes(hash[:])
	return asInt.Cmp(target) <= 0
}

// maxTarget is the easiest legal target: difficulty 1.
var maxTarget = CompactToTarget(0x1d00ffff)

// Difficulty returns the human-readable maxTarget/target ratio as a
// float64; the comparisons that matter for consensus stay exact
// uint256 arithmetic in IsProofOfWork, this is purely informational.
func Difficulty(target *uint256.Int) float64 {
	if target.IsZero() {
		return 0
	}
	ratio := new(big.Float).Quo(
		new(big.Float).SetInt(maxTarget.ToBig()),
		new(big.Float).SetInt(target.ToBig()),
	)
	f, _ := ratio.Float64()
	return f
}
