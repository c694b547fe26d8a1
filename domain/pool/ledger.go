package pool

import "fmt"

// OrderTerms are the caller-visible parameters of a submission. The
// true terms live inside the commitment; these are what the pool is
// allowed to see.
type OrderTerms struct {
	Commitment            OrderCommitment
	TokenDeposited        string
	AmountDeposited       uint64
	EscrowConfirmed       bool
	SettlementAddress     string
	ExpectedPrice         uint64
	ExpectedExchangeToken string
	Spread                uint32
	TimeLimit             uint64
}

// SubmitOrder validates the terms, stores a fresh Active order and
// returns its id. In MatchingPool mode the pool limits apply and a
// first-time submitter implicitly joins the pool.
func (s *State) SubmitOrder(user UserID, terms OrderTerms, now uint64) (string, error) {
	if terms.AmountDeposited == 0 {
		return "", ErrAmountZero
	}

	if s.mode == MatchingPool {
		if cfg := s.config; cfg != nil {
			if terms.AmountDeposited < cfg.MinOrderAmount ||
				terms.AmountDeposited > cfg.MaxOrderAmount {
				return "", ErrAmountOutOfRange
			}
			if !cfg.SupportsToken(terms.TokenDeposited) {
				return "", ErrTokenNotSupported
			}
		}

		if !s.isMember(user) {
			if err := s.JoinPool(user); err != nil {
				return "", err
			}
		}
	}

	s.orderCounter++
	orderID := fmt.Sprintf("order_%d", s.orderCounter)
	orderContextID := fmt.Sprintf("trade_ctx_%s_%s", user, orderID)

	order := &UserOrder{
		ID:                    orderID,
		UserID:                user,
		Commitment:            terms.Commitment,
		TokenDeposited:        terms.TokenDeposited,
		AmountDeposited:       terms.AmountDeposited,
		EscrowConfirmed:       terms.EscrowConfirmed,
		SettlementAddress:     terms.SettlementAddress,
		ExpectedPrice:         terms.ExpectedPrice,
		ExpectedExchangeToken: terms.ExpectedExchangeToken,
		Spread:                terms.Spread,
		TimeLimit:             terms.TimeLimit,
		OrderContextID:        orderContextID,
		UserContextID:         string(user),
		Status:                ActiveStatus(),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	s.orders[orderID] = order
	s.orderSeq = append(s.orderSeq, orderID)
	s.userIndex[user] = append(s.userIndex[user], orderID)

	s.emit(OrderSubmitted{OrderID: orderID, UserID: user})
	return orderID, nil
}

// CancelOrder moves an Active order to Cancelled. Owner-only.
func (s *State) CancelOrder(user UserID, orderID string, now uint64) error {
	order, ok := s.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if order.UserID != user {
		return ErrNotOrderOwner
	}
	if !order.Status.IsActive() {
		return ErrOrderNotActive
	}

	order.Status = CancelledStatus()
	order.UpdatedAt = now

	s.emit(OrderCancelled{OrderID: orderID, UserID: user})
	return nil
}

// ActiveOrders returns a snapshot of all Active, escrow-confirmed
// orders in submission order. Copies, not live views.
func (s *State) ActiveOrders() []UserOrder {
	out := make([]UserOrder, 0)
	for _, id := range s.orderSeq {
		o := s.orders[id]
		if o.Status.IsActive() && o.EscrowConfirmed {
			out = append(out, *o)
		}
	}
	return out
}

// UserOrders returns the user's orders in submission order. Empty for
// unknown users.
func (s *State) UserOrders(user UserID) []UserOrder {
	ids := s.userIndex[user]
	out := make([]UserOrder, 0, len(ids))
	for _, id := range ids {
		if o, ok := s.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out
}
