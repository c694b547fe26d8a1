package pool

// SubmitSettlementResult attaches an external settlement transaction
// reference to every order of a batch. An unknown batch id is silently
// ignored; the notification is emitted either way. Never fails.
func (s *State) SubmitSettlementResult(batchID, txHash string, now uint64) {
	if batch, ok := s.batches[batchID]; ok {
		for _, p := range batch.MatchedOrders {
			s.applySettlement(p.First, txHash, now)
			s.applySettlement(p.Second, txHash, now)
		}
	}

	s.emit(SettlementSubmitted{BatchID: batchID, TxHash: txHash})
}

func (s *State) applySettlement(orderID, txHash string, now uint64) {
	o, ok := s.orders[orderID]
	if !ok {
		return
	}
	o.SettlementTx = txHash
	o.Status = FullyMatchedStatus()
	o.Matched = true
	o.UpdatedAt = now
}
