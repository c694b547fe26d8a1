package pool

// Read-only projections. None of these can fail; unknown keys yield
// empty or absent results.

// Mode returns the operating mode fixed at creation.
func (s *State) Mode() OperatingMode {
	return s.mode
}

// Admin returns the context's executor recorded at initialization.
func (s *State) Admin() UserID {
	return s.admin
}

// Config returns a copy of the pool configuration, or nil if none was
// set.
func (s *State) Config() *PoolConfig {
	if s.config == nil {
		return nil
	}
	cfg := *s.config
	cfg.SupportedTokens = append([]string(nil), s.config.SupportedTokens...)
	return &cfg
}

// ActiveUsers returns the admitted members in join order.
func (s *State) ActiveUsers() []UserID {
	return append([]UserID(nil), s.activeUsers...)
}

// BatchResult returns the stored result for a batch id.
func (s *State) BatchResult(batchID string) (BatchMatchResult, bool) {
	b, ok := s.batches[batchID]
	if !ok {
		return BatchMatchResult{}, false
	}
	return copyBatch(b), true
}

// BatchOrders returns a batch result together with the full order
// records of its participants, first then second per pair.
func (s *State) BatchOrders(batchID string) (BatchMatchResult, []UserOrder, bool) {
	b, ok := s.batches[batchID]
	if !ok {
		return BatchMatchResult{}, nil, false
	}

	orders := make([]UserOrder, 0, len(b.MatchedOrders)*2)
	for _, p := range b.MatchedOrders {
		if a, ok := s.orders[p.First]; ok {
			orders = append(orders, *a)
		}
		if o, ok := s.orders[p.Second]; ok {
			orders = append(orders, *o)
		}
	}
	return copyBatch(b), orders, true
}

func copyBatch(b *BatchMatchResult) BatchMatchResult {
	out := *b
	out.MatchedOrders = append([]OrderPair(nil), b.MatchedOrders...)
	out.Nullifiers = append([]Hash32(nil), b.Nullifiers...)
	return out
}
