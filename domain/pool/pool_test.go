package pool

// Shared test fixtures.

type recorder struct {
	events []Event
}

func (r *recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) names() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Name())
	}
	return out
}

func (r *recorder) last() Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func testConfig() *PoolConfig {
	return &PoolConfig{
		PoolName:              "test-pool",
		MinOrderAmount:        10,
		MaxOrderAmount:        1000,
		SupportedTokens:       []string{"TKN"},
		BatchFrequencySeconds: 30,
		FeeBasisPoints:        25,
		CreatedAt:             1,
	}
}

func newPoolEnv() (*State, *recorder) {
	rec := &recorder{}
	st := New(MatchingPool, testConfig(), "admin", rec)
	return st, rec
}

func newPrivateEnv() (*State, *recorder) {
	rec := &recorder{}
	st := New(UserPrivate, nil, "admin", rec)
	return st, rec
}

func terms(amount uint64, escrow bool, price uint64) OrderTerms {
	var seed Hash32
	seed[0] = byte(amount)
	return OrderTerms{
		Commitment: OrderCommitment{
			NullifierSeed: seed,
			Timestamp:     100,
			Expiry:        200,
		},
		TokenDeposited:        "TKN",
		AmountDeposited:       amount,
		EscrowConfirmed:       escrow,
		SettlementAddress:     "0xabc",
		ExpectedPrice:         price,
		ExpectedExchangeToken: "OTH",
		Spread:                50,
		TimeLimit:             3600,
	}
}
