package grpcserver

import "meropools/domain/pool"

type SubmitOrderRequest struct {
	UserID                string               `json:"user_id"`
	Commitment            pool.OrderCommitment `json:"commitment"`
	TokenDeposited        string               `json:"token_deposited"`
	AmountDeposited       uint64               `json:"amount_deposited"`
	EscrowConfirmed       bool                 `json:"escrow_confirmed"`
	SettlementAddress     string               `json:"settlement_address"`
	ExpectedPrice         uint64               `json:"expected_price"`
	ExpectedExchangeToken string               `json:"expected_exchange_token"`
	Spread                uint32               `json:"spread"`
	TimeLimit             uint64               `json:"time_limit"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"order_id"`
}

type CancelOrderRequest struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

type CancelOrderResponse struct{}

type JoinPoolRequest struct {
	UserID string `json:"user_id"`
}

type JoinPoolResponse struct{}

type AddUserToPoolRequest struct {
	UserID string `json:"user_id"`
}

type AddUserToPoolResponse struct{}

type RunBatchMatchingRequest struct{}

type RunBatchMatchingResponse struct {
	BatchID string `json:"batch_id"`
}

type SubmitSettlementResultRequest struct {
	BatchID string `json:"batch_id"`
	TxHash  string `json:"tx_hash"`
}

type SubmitSettlementResultResponse struct{}

type GetPoolConfigRequest struct{}

type GetPoolConfigResponse struct {
	Config *pool.PoolConfig `json:"config,omitempty"`
}

type GetActiveUsersRequest struct{}

type GetActiveUsersResponse struct {
	Users []pool.UserID `json:"users"`
}

type GetActiveOrdersRequest struct{}

type GetActiveOrdersResponse struct {
	Orders []pool.UserOrder `json:"orders"`
}

type GetUserOrdersRequest struct {
	UserID string `json:"user_id"`
}

type GetUserOrdersResponse struct {
	Orders []pool.UserOrder `json:"orders"`
}

type GetBatchResultRequest struct {
	BatchID string `json:"batch_id"`
}

type GetBatchResultResponse struct {
	Result *pool.BatchMatchResult `json:"result,omitempty"`
}

type GetBatchOrdersRequest struct {
	BatchID string `json:"batch_id"`
}

type GetBatchOrdersResponse struct {
	Result *pool.BatchMatchResult `json:"result,omitempty"`
	Orders []pool.UserOrder       `json:"orders,omitempty"`
}

type GetModeRequest struct{}

type GetModeResponse struct {
	Mode pool.OperatingMode `json:"mode"`
}
