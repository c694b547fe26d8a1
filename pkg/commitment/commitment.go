// Package commitment builds order commitments for hosts that prepare
// orders in-process. The pool core never inspects these bytes; the
// construction here mirrors what a client would submit. Hashes are
// blake3 over labeled canonical strings, a stand-in for a real
// commitment scheme rather than one itself.
package commitment

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"

	"meropools/domain/pool"
)

// Terms are the plaintext order details a commitment is built from.
type Terms struct {
	Token             string `json:"token"`
	Amount            uint64 `json:"amount"`
	ExpectedToken     string `json:"expected_token"`
	ExpectedPrice     uint64 `json:"expected_price"`
	SettlementAddress string `json:"settlement_address"`
}

// Build creates a commitment valid from now until now+ttl (both in
// nanoseconds). The payload is carried as-is; the nullifier seed is
// random so each commitment nullifies independently.
func Build(terms Terms, now, ttl uint64) (pool.OrderCommitment, error) {
	payload, err := json.Marshal(terms)
	if err != nil {
		return pool.OrderCommitment{}, err
	}

	var seed pool.Hash32
	if _, err := rand.Read(seed[:]); err != nil {
		return pool.OrderCommitment{}, fmt.Errorf("nullifier seed: %w", err)
	}

	commitmentHash := hashLabel(fmt.Sprintf(
		"commit_%s_%d_%s_%d", terms.Token, terms.Amount, terms.ExpectedToken, now,
	))
	proofOfFunds := hashLabel(fmt.Sprintf(
		"proof_%s_%d", terms.SettlementAddress, terms.Amount,
	))

	return pool.OrderCommitment{
		CommitmentHash:   commitmentHash,
		EncryptedPayload: payload,
		NullifierSeed:    seed,
		ProofOfFunds:     proofOfFunds,
		Timestamp:        now,
		Expiry:           now + ttl,
	}, nil
}

// Validate performs the structural checks a pool host runs before
// accepting a commitment from the wire.
func Validate(c pool.OrderCommitment) error {
	if len(c.EncryptedPayload) == 0 {
		return fmt.Errorf("empty payload")
	}
	if c.Expiry <= c.Timestamp {
		return fmt.Errorf("expiry %d not after timestamp %d", c.Expiry, c.Timestamp)
	}
	return nil
}

func hashLabel(label string) pool.Hash32 {
	return pool.Hash32(blake3.Sum256([]byte(label)))
}
