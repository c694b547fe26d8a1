package pool

// Event is a notification record handed to the Emitter after the
// corresponding state change has been committed. Delivery is
// fire-and-forget; the core never learns the outcome.
type Event interface {
	Name() string
}

// Emitter is the outbound side channel supplied by the host.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(ev Event) { f(ev) }

type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}

type OrderSubmitted struct {
	OrderID string `json:"order_id"`
	UserID  UserID `json:"user_id"`
}

func (OrderSubmitted) Name() string { return "OrderSubmitted" }

type OrderCancelled struct {
	OrderID string `json:"order_id"`
	UserID  UserID `json:"user_id"`
}

func (OrderCancelled) Name() string { return "OrderCancelled" }

type UserJoinedPool struct {
	UserID   UserID `json:"user_id"`
	PoolName string `json:"pool_name"`
}

func (UserJoinedPool) Name() string { return "UserJoinedPool" }

type BatchProcessingStarted struct {
	BatchID    string `json:"batch_id"`
	OrderCount uint32 `json:"order_count"`
}

func (BatchProcessingStarted) Name() string { return "BatchProcessingStarted" }

type BatchMatched struct {
	BatchID       string `json:"batch_id"`
	MatchCount    uint32 `json:"match_count"`
	ClearingPrice uint64 `json:"clearing_price"`
}

func (BatchMatched) Name() string { return "BatchMatched" }

type BatchReady struct {
	BatchID       string      `json:"batch_id"`
	MatchedOrders []OrderPair `json:"matched_orders"`
	ClearingPrice uint64      `json:"clearing_price"`
	TotalVolume   uint64      `json:"total_volume"`
}

func (BatchReady) Name() string { return "BatchReady" }

type SettlementSubmitted struct {
	BatchID string `json:"batch_id"`
	TxHash  string `json:"tx_hash"`
}

func (SettlementSubmitted) Name() string { return "SettlementSubmitted" }
