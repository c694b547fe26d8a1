package pool

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// DeriveNullifier mixes a commitment's nullifier seed with the current
// host time into a 32-byte value. The low 8 bytes carry the mix, the
// rest are zero. This is a placeholder shape, not a security
// primitive.
func DeriveNullifier(seed Hash32, now uint64) Hash32 {
	var buf [40]byte
	copy(buf[:32], seed[:])
	binary.LittleEndian.PutUint64(buf[32:], now)

	sum := xxhash.Sum64(buf[:])

	var nullifier Hash32
	binary.LittleEndian.PutUint64(nullifier[:8], sum)
	return nullifier
}

// deriveNullifiers produces one nullifier per matched order, first
// then second for each pair. Vanished order ids are skipped.
func (s *State) deriveNullifiers(pairs []OrderPair, now uint64) []Hash32 {
	nullifiers := make([]Hash32, 0, len(pairs)*2)
	for _, p := range pairs {
		if a, ok := s.orders[p.First]; ok {
			nullifiers = append(nullifiers, DeriveNullifier(a.Commitment.NullifierSeed, now))
		}
		if b, ok := s.orders[p.Second]; ok {
			nullifiers = append(nullifiers, DeriveNullifier(b.Commitment.NullifierSeed, now))
		}
	}
	return nullifiers
}
