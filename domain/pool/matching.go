package pool

import "fmt"

// RunBatchMatching pairs the current snapshot of eligible orders,
// derives a single clearing price and per-order nullifiers, stores the
// result under a fresh batch id and marks paired orders FullyMatched.
// Only valid in MatchingPool mode.
func (s *State) RunBatchMatching(now uint64) (string, error) {
	if s.mode != MatchingPool {
		return "", ErrNotMatchingPool
	}

	s.batchCounter++
	batchID := fmt.Sprintf("batch_%d", s.batchCounter)

	snapshot := s.ActiveOrders()

	s.emit(BatchProcessingStarted{
		BatchID:    batchID,
		OrderCount: uint32(len(snapshot)),
	})

	pairs, totalVolume := pairSequential(snapshot)

	var clearingPrice uint64
	if len(pairs) > 0 {
		a, okA := s.orders[pairs[0].First]
		b, okB := s.orders[pairs[0].Second]
		if okA && okB {
			clearingPrice = clearingPriceFor(a, b)
		}
	}

	result := &BatchMatchResult{
		BatchID:       batchID,
		MatchedOrders: pairs,
		ClearingPrice: clearingPrice,
		TotalVolume:   totalVolume,
		Nullifiers:    s.deriveNullifiers(pairs, now),
		Timestamp:     now,
	}
	s.batches[batchID] = result

	s.emit(BatchMatched{
		BatchID:       batchID,
		MatchCount:    uint32(len(pairs)),
		ClearingPrice: clearingPrice,
	})
	s.emit(BatchReady{
		BatchID:       batchID,
		MatchedOrders: append([]OrderPair(nil), pairs...),
		ClearingPrice: clearingPrice,
		TotalVolume:   totalVolume,
	})

	// Best-effort status update: an id that vanished is skipped.
	for _, p := range pairs {
		s.markFullyMatched(p.First, now)
		s.markFullyMatched(p.Second, now)
	}

	return batchID, nil
}

// pairSequential walks the snapshot two at a time. A pair with an
// unconfirmed escrow on either side is skipped whole; an odd trailing
// order is left unmatched. Traded volume per pair is the smaller of
// the two deposits.
func pairSequential(orders []UserOrder) ([]OrderPair, uint64) {
	pairs := make([]OrderPair, 0, len(orders)/2)
	var totalVolume uint64

	for i := 0; i+1 < len(orders); i += 2 {
		a, b := &orders[i], &orders[i+1]
		if !a.EscrowConfirmed || !b.EscrowConfirmed {
			continue
		}
		pairs = append(pairs, OrderPair{First: a.ID, Second: b.ID})
		totalVolume += min(a.AmountDeposited, b.AmountDeposited)
	}
	return pairs, totalVolume
}

// clearingPriceFor prices the whole batch off one pair: the truncating
// mean when both sides express a price, otherwise the larger of the
// two (covering a side with no preference).
func clearingPriceFor(a, b *UserOrder) uint64 {
	if a.ExpectedPrice > 0 && b.ExpectedPrice > 0 {
		return (a.ExpectedPrice + b.ExpectedPrice) / 2
	}
	return max(a.ExpectedPrice, b.ExpectedPrice)
}

func (s *State) markFullyMatched(orderID string, now uint64) {
	o, ok := s.orders[orderID]
	if !ok {
		return
	}
	o.Status = FullyMatchedStatus()
	o.Matched = true
	o.UpdatedAt = now
}
