package service

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"meropools/domain/pool"
	"meropools/infra/wire"
)

type memOutbox struct {
	payloads [][]byte
}

func (m *memOutbox) Append(payload []byte) (uint64, error) {
	m.payloads = append(m.payloads, payload)
	return uint64(len(m.payloads)), nil
}

func (m *memOutbox) events(t *testing.T) []pool.Event {
	t.Helper()
	out := make([]pool.Event, 0, len(m.payloads))
	for _, p := range m.payloads {
		ev, err := wire.DecodeEvent(p)
		if err != nil {
			t.Fatalf("outbox payload does not decode: %v", err)
		}
		out = append(out, ev)
	}
	return out
}

func newTestService(ob Outbox) *PoolService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return New(Config{
		Mode: pool.MatchingPool,
		PoolConfig: &pool.PoolConfig{
			PoolName:        "svc-pool",
			MinOrderAmount:  10,
			MaxOrderAmount:  1000,
			SupportedTokens: []string{"TKN"},
		},
		Admin:  "admin",
		Outbox: ob,
		Log:    log,
		Now:    func() time.Time { return time.Unix(0, 12345) },
	})
}

func svcTerms(amount uint64) pool.OrderTerms {
	return pool.OrderTerms{
		TokenDeposited:  "TKN",
		AmountDeposited: amount,
		EscrowConfirmed: true,
		ExpectedPrice:   100,
	}
}

func TestServiceSubmitQueuesNotification(t *testing.T) {
	ob := &memOutbox{}
	svc := newTestService(ob)

	orderID, err := svc.SubmitOrder("alice", svcTerms(50))
	if err != nil {
		t.Fatal(err)
	}

	events := ob.events(t)
	if len(events) != 2 {
		t.Fatalf("expected join + submit notifications, got %d", len(events))
	}
	if _, ok := events[0].(pool.UserJoinedPool); !ok {
		t.Errorf("first event should be UserJoinedPool, got %T", events[0])
	}
	submitted, ok := events[1].(pool.OrderSubmitted)
	if !ok {
		t.Fatalf("second event should be OrderSubmitted, got %T", events[1])
	}
	if submitted.OrderID != orderID || submitted.UserID != "alice" {
		t.Errorf("unexpected payload: %+v", submitted)
	}
}

func TestServicePinnedClock(t *testing.T) {
	svc := newTestService(&memOutbox{})

	if _, err := svc.SubmitOrder("alice", svcTerms(50)); err != nil {
		t.Fatal(err)
	}
	o := svc.UserOrders("alice")[0]
	if o.CreatedAt != 12345 || o.UpdatedAt != 12345 {
		t.Errorf("timestamps not taken from injected clock: %+v", o)
	}
}

func TestServiceRejectionQueuesNothing(t *testing.T) {
	ob := &memOutbox{}
	svc := newTestService(ob)

	if _, err := svc.SubmitOrder("alice", svcTerms(0)); err == nil {
		t.Fatal("zero amount should be rejected")
	}
	if len(ob.payloads) != 0 {
		t.Error("rejected call must not queue notifications")
	}
}

func TestServiceFullFlow(t *testing.T) {
	ob := &memOutbox{}
	svc := newTestService(ob)

	for _, u := range []pool.UserID{"u1", "u2", "u3", "u4"} {
		if _, err := svc.SubmitOrder(u, svcTerms(50)); err != nil {
			t.Fatal(err)
		}
	}

	batchID, err := svc.RunBatchMatching()
	if err != nil {
		t.Fatal(err)
	}
	result, ok := svc.BatchResult(batchID)
	if !ok || len(result.MatchedOrders) != 2 {
		t.Fatalf("unexpected batch result: %+v", result)
	}

	svc.SubmitSettlementResult(batchID, "0xabc")
	_, orders, ok := svc.BatchOrders(batchID)
	if !ok {
		t.Fatal("batch orders missing")
	}
	for _, o := range orders {
		if o.SettlementTx != "0xabc" {
			t.Errorf("order %s missing settlement reference", o.ID)
		}
	}

	events := ob.events(t)
	last := events[len(events)-1]
	if _, ok := last.(pool.SettlementSubmitted); !ok {
		t.Errorf("expected trailing SettlementSubmitted, got %T", last)
	}
}
