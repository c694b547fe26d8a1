package pool

import (
	"errors"
	"testing"
)

func TestSubmitZeroAmountRejected(t *testing.T) {
	st, rec := newPoolEnv()

	_, err := st.SubmitOrder("alice", terms(0, true, 100), 1)
	if !errors.Is(err, ErrAmountZero) {
		t.Fatalf("expected ErrAmountZero, got %v", err)
	}
	if len(st.UserOrders("alice")) != 0 {
		t.Error("ledger should be unchanged after rejected submission")
	}
	if len(rec.events) != 0 {
		t.Error("no events should be emitted on rejection")
	}
}

func TestSubmitPoolLimits(t *testing.T) {
	st, _ := newPoolEnv()

	if _, err := st.SubmitOrder("alice", terms(5, true, 100), 1); !errors.Is(err, ErrAmountOutOfRange) {
		t.Errorf("amount below min: expected ErrAmountOutOfRange, got %v", err)
	}
	if _, err := st.SubmitOrder("alice", terms(5000, true, 100), 1); !errors.Is(err, ErrAmountOutOfRange) {
		t.Errorf("amount above max: expected ErrAmountOutOfRange, got %v", err)
	}

	bad := terms(50, true, 100)
	bad.TokenDeposited = "OTHER"
	if _, err := st.SubmitOrder("alice", bad, 1); !errors.Is(err, ErrTokenNotSupported) {
		t.Errorf("unsupported token: expected ErrTokenNotSupported, got %v", err)
	}

	id, err := st.SubmitOrder("alice", terms(50, true, 100), 1)
	if err != nil {
		t.Fatalf("valid submission failed: %v", err)
	}
	if id != "order_1" {
		t.Errorf("expected order_1, got %s", id)
	}
}

func TestSubmitAutoJoinsPool(t *testing.T) {
	st, rec := newPoolEnv()

	if _, err := st.SubmitOrder("alice", terms(50, true, 100), 1); err != nil {
		t.Fatal(err)
	}

	users := st.ActiveUsers()
	if len(users) != 1 || users[0] != "alice" {
		t.Fatalf("expected alice as pool member, got %v", users)
	}

	names := rec.names()
	if len(names) != 2 || names[0] != "UserJoinedPool" || names[1] != "OrderSubmitted" {
		t.Errorf("expected join then submit events, got %v", names)
	}

	// Second submission must not rejoin.
	rec.events = nil
	if _, err := st.SubmitOrder("alice", terms(60, true, 100), 2); err != nil {
		t.Fatal(err)
	}
	if names := rec.names(); len(names) != 1 || names[0] != "OrderSubmitted" {
		t.Errorf("expected only OrderSubmitted, got %v", names)
	}
}

func TestSubmitUserPrivateSkipsPoolChecks(t *testing.T) {
	st, _ := newPrivateEnv()

	// Out-of-range amount and foreign token are fine outside pool mode.
	tm := terms(5, true, 100)
	tm.TokenDeposited = "ANY"
	if _, err := st.SubmitOrder("alice", tm, 1); err != nil {
		t.Fatalf("user-private submission failed: %v", err)
	}
	if len(st.ActiveUsers()) != 0 {
		t.Error("no pool membership should exist in user-private mode")
	}
}

func TestSubmitOrderFields(t *testing.T) {
	st, _ := newPoolEnv()

	id, err := st.SubmitOrder("alice", terms(50, true, 100), 42)
	if err != nil {
		t.Fatal(err)
	}

	orders := st.UserOrders("alice")
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	o := orders[0]

	if o.ID != id || o.UserID != "alice" {
		t.Errorf("bad identity fields: %+v", o)
	}
	if o.OrderContextID != "trade_ctx_alice_order_1" {
		t.Errorf("unexpected order context id %q", o.OrderContextID)
	}
	if o.UserContextID != "alice" {
		t.Errorf("unexpected user context id %q", o.UserContextID)
	}
	if !o.Status.IsActive() || o.Matched {
		t.Errorf("new order must be active and unmatched: %+v", o)
	}
	if o.SettlementTx != "" || o.TransactionID != "" {
		t.Error("new order must carry no settlement or transaction reference")
	}
	if o.CreatedAt != 42 || o.UpdatedAt != 42 {
		t.Errorf("timestamps not set from call time: created=%d updated=%d", o.CreatedAt, o.UpdatedAt)
	}
}

func TestCancelOrder(t *testing.T) {
	st, rec := newPoolEnv()
	id, _ := st.SubmitOrder("alice", terms(50, true, 100), 1)
	rec.events = nil

	if err := st.CancelOrder("alice", id, 2); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	o := st.UserOrders("alice")[0]
	if o.Status.Kind != StatusCancelled || o.UpdatedAt != 2 {
		t.Errorf("cancel did not apply: %+v", o)
	}
	if names := rec.names(); len(names) != 1 || names[0] != "OrderCancelled" {
		t.Errorf("expected OrderCancelled, got %v", names)
	}

	// Cancelling twice fails with a state error.
	if err := st.CancelOrder("alice", id, 3); !errors.Is(err, ErrOrderNotActive) {
		t.Errorf("expected ErrOrderNotActive on second cancel, got %v", err)
	}
}

func TestCancelNotOwner(t *testing.T) {
	st, _ := newPoolEnv()
	id, _ := st.SubmitOrder("alice", terms(50, true, 100), 1)

	if err := st.CancelOrder("mallory", id, 2); !errors.Is(err, ErrNotOrderOwner) {
		t.Fatalf("expected ErrNotOrderOwner, got %v", err)
	}
	if o := st.UserOrders("alice")[0]; !o.Status.IsActive() {
		t.Error("order status must be unchanged after rejected cancel")
	}
}

func TestCancelUnknownOrder(t *testing.T) {
	st, _ := newPoolEnv()
	if err := st.CancelOrder("alice", "order_404", 1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestActiveOrdersFiltersEscrow(t *testing.T) {
	st, _ := newPoolEnv()
	st.SubmitOrder("alice", terms(50, true, 100), 1)
	st.SubmitOrder("bob", terms(60, false, 100), 2)
	cancelled, _ := st.SubmitOrder("carol", terms(70, true, 100), 3)
	st.CancelOrder("carol", cancelled, 4)

	active := st.ActiveOrders()
	if len(active) != 1 || active[0].UserID != "alice" {
		t.Fatalf("expected only alice's order, got %v", active)
	}

	// Snapshot semantics: mutating the copy must not touch the ledger.
	active[0].Status = ExpiredStatus()
	if o := st.UserOrders("alice")[0]; !o.Status.IsActive() {
		t.Error("snapshot mutation leaked into ledger")
	}
}

func TestUserOrdersInsertionOrder(t *testing.T) {
	st, _ := newPoolEnv()
	st.SubmitOrder("alice", terms(50, true, 100), 1)
	st.SubmitOrder("bob", terms(60, true, 100), 2)
	st.SubmitOrder("alice", terms(70, true, 100), 3)

	orders := st.UserOrders("alice")
	if len(orders) != 2 || orders[0].ID != "order_1" || orders[1].ID != "order_3" {
		t.Errorf("user orders out of submission order: %v", orders)
	}
	if got := st.UserOrders("nobody"); len(got) != 0 {
		t.Errorf("unknown user should yield empty slice, got %v", got)
	}
}

func TestOrderIDsMonotonic(t *testing.T) {
	st, _ := newPoolEnv()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id, err := st.SubmitOrder("alice", terms(50, true, 100), uint64(i))
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("order id %s reused", id)
		}
		seen[id] = true
	}
	if !seen["order_5"] {
		t.Error("expected counter to reach order_5")
	}
}
