package pool

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// UserID identifies a participant. Opaque to the core; the host
// resolves caller identity and passes it in per call.
type UserID string

// Hash32 is a fixed 32-byte value (commitment hashes, nullifier seeds,
// proofs, nullifiers). Stored and compared only, never parsed.
type Hash32 [32]byte

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash32) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h[:]))
}

func (h *Hash32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(h) {
		return fmt.Errorf("hash must be %d bytes, got %d", len(h), len(b))
	}
	copy(h[:], b)
	return nil
}

// OperatingMode is fixed at context creation and never changes.
type OperatingMode int

const (
	// UserPrivate is a per-user context for order preparation.
	UserPrivate OperatingMode = iota
	// MatchingPool is a shared context users join for trading.
	MatchingPool
)

func (m OperatingMode) String() string {
	switch m {
	case UserPrivate:
		return "user_private"
	case MatchingPool:
		return "matching_pool"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m OperatingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *OperatingMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "user_private":
		*m = UserPrivate
	case "matching_pool":
		*m = MatchingPool
	default:
		return fmt.Errorf("unknown operating mode %q", s)
	}
	return nil
}

// PoolConfig describes a matching pool. Immutable once set.
type PoolConfig struct {
	PoolName              string   `json:"pool_name"`
	MinOrderAmount        uint64   `json:"min_order_amount"`
	MaxOrderAmount        uint64   `json:"max_order_amount"`
	SupportedTokens       []string `json:"supported_tokens"`
	BatchFrequencySeconds uint64   `json:"batch_frequency_seconds"`
	FeeBasisPoints        uint32   `json:"fee_basis_points"`
	CreatedAt             uint64   `json:"created_at"`
}

func (c *PoolConfig) SupportsToken(token string) bool {
	for _, t := range c.SupportedTokens {
		if t == token {
			return true
		}
	}
	return false
}

// OrderCommitment carries the encrypted representation of an order's
// true terms. Opaque beyond storage and the nullifier seed.
type OrderCommitment struct {
	CommitmentHash   Hash32 `json:"commitment_hash"`
	EncryptedPayload []byte `json:"encrypted_payload"`
	NullifierSeed    Hash32 `json:"nullifier_seed"`
	ProofOfFunds     Hash32 `json:"proof_of_funds"`
	Timestamp        uint64 `json:"timestamp"`
	Expiry           uint64 `json:"expiry"`
}

// UserOrder is the central entity of the ledger.
type UserOrder struct {
	ID                    string          `json:"id"`
	UserID                UserID          `json:"user_id"`
	Commitment            OrderCommitment `json:"commitment"`
	TokenDeposited        string          `json:"token_deposited"`
	AmountDeposited       uint64          `json:"amount_deposited"`
	EscrowConfirmed       bool            `json:"escrow_confirmed"`
	SettlementAddress     string          `json:"settlement_address"`
	ExpectedPrice         uint64          `json:"expected_price"`
	ExpectedExchangeToken string          `json:"expected_exchange_token"`
	Spread                uint32          `json:"spread"`
	TimeLimit             uint64          `json:"time_limit"`
	OrderContextID        string          `json:"order_context_id"`
	UserContextID         string          `json:"user_context_id"`
	Status                OrderStatus     `json:"status"`
	Matched               bool            `json:"matched"`
	SettlementTx          string          `json:"settlement_tx,omitempty"`
	TransactionID         string          `json:"transaction_id,omitempty"`
	CreatedAt             uint64          `json:"created_at"`
	UpdatedAt             uint64          `json:"updated_at"`
}

// OrderPair is one matched pairing, stored as (first, second) in
// discovery order.
type OrderPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// BatchMatchResult records one matching engine run. Immutable once
// stored; history is append-only keyed by batch id.
type BatchMatchResult struct {
	BatchID       string      `json:"batch_id"`
	MatchedOrders []OrderPair `json:"matched_orders"`
	ClearingPrice uint64      `json:"clearing_price"`
	TotalVolume   uint64      `json:"total_volume"`
	Nullifiers    []Hash32    `json:"nullifiers"`
	Timestamp     uint64      `json:"timestamp"`
}
