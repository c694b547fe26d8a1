// Package grpcserver adapts the pool service to gRPC. The service
// descriptor is written by hand; see codec.go for the payload format.
package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meropools/domain/pool"
	"meropools/service"
)

const serviceName = "meropools.v1.PoolService"

type Server struct {
	svc *service.PoolService
}

func NewServer(svc *service.PoolService) *Server {
	return &Server{svc: svc}
}

// Register attaches the pool service to a gRPC server.
func (s *Server) Register(g *grpc.Server) {
	g.RegisterService(&poolServiceDesc, s)
}

// -------------------- Commands --------------------

func (s *Server) SubmitOrder(_ context.Context, req *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	orderID, err := s.svc.SubmitOrder(pool.UserID(req.UserID), pool.OrderTerms{
		Commitment:            req.Commitment,
		TokenDeposited:        req.TokenDeposited,
		AmountDeposited:       req.AmountDeposited,
		EscrowConfirmed:       req.EscrowConfirmed,
		SettlementAddress:     req.SettlementAddress,
		ExpectedPrice:         req.ExpectedPrice,
		ExpectedExchangeToken: req.ExpectedExchangeToken,
		Spread:                req.Spread,
		TimeLimit:             req.TimeLimit,
	})
	if err != nil {
		return nil, rpcError(err)
	}
	return &SubmitOrderResponse{OrderID: orderID}, nil
}

func (s *Server) CancelOrder(_ context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error) {
	if err := s.svc.CancelOrder(pool.UserID(req.UserID), req.OrderID); err != nil {
		return nil, rpcError(err)
	}
	return &CancelOrderResponse{}, nil
}

func (s *Server) JoinPool(_ context.Context, req *JoinPoolRequest) (*JoinPoolResponse, error) {
	if err := s.svc.JoinPool(pool.UserID(req.UserID)); err != nil {
		return nil, rpcError(err)
	}
	return &JoinPoolResponse{}, nil
}

func (s *Server) AddUserToPool(_ context.Context, req *AddUserToPoolRequest) (*AddUserToPoolResponse, error) {
	if err := s.svc.AddUserToPool(pool.UserID(req.UserID)); err != nil {
		return nil, rpcError(err)
	}
	return &AddUserToPoolResponse{}, nil
}

func (s *Server) RunBatchMatching(_ context.Context, _ *RunBatchMatchingRequest) (*RunBatchMatchingResponse, error) {
	batchID, err := s.svc.RunBatchMatching()
	if err != nil {
		return nil, rpcError(err)
	}
	return &RunBatchMatchingResponse{BatchID: batchID}, nil
}

func (s *Server) SubmitSettlementResult(_ context.Context, req *SubmitSettlementResultRequest) (*SubmitSettlementResultResponse, error) {
	s.svc.SubmitSettlementResult(req.BatchID, req.TxHash)
	return &SubmitSettlementResultResponse{}, nil
}

// -------------------- Queries --------------------

func (s *Server) GetPoolConfig(_ context.Context, _ *GetPoolConfigRequest) (*GetPoolConfigResponse, error) {
	return &GetPoolConfigResponse{Config: s.svc.PoolConfig()}, nil
}

func (s *Server) GetActiveUsers(_ context.Context, _ *GetActiveUsersRequest) (*GetActiveUsersResponse, error) {
	return &GetActiveUsersResponse{Users: s.svc.ActiveUsers()}, nil
}

func (s *Server) GetActiveOrders(_ context.Context, _ *GetActiveOrdersRequest) (*GetActiveOrdersResponse, error) {
	return &GetActiveOrdersResponse{Orders: s.svc.ActiveOrders()}, nil
}

func (s *Server) GetUserOrders(_ context.Context, req *GetUserOrdersRequest) (*GetUserOrdersResponse, error) {
	return &GetUserOrdersResponse{Orders: s.svc.UserOrders(pool.UserID(req.UserID))}, nil
}

func (s *Server) GetBatchResult(_ context.Context, req *GetBatchResultRequest) (*GetBatchResultResponse, error) {
	result, ok := s.svc.BatchResult(req.BatchID)
	if !ok {
		return &GetBatchResultResponse{}, nil
	}
	return &GetBatchResultResponse{Result: &result}, nil
}

func (s *Server) GetBatchOrders(_ context.Context, req *GetBatchOrdersRequest) (*GetBatchOrdersResponse, error) {
	result, orders, ok := s.svc.BatchOrders(req.BatchID)
	if !ok {
		return &GetBatchOrdersResponse{}, nil
	}
	return &GetBatchOrdersResponse{Result: &result, Orders: orders}, nil
}

func (s *Server) GetMode(_ context.Context, _ *GetModeRequest) (*GetModeResponse, error) {
	return &GetModeResponse{Mode: s.svc.Mode()}, nil
}

// rpcError maps the domain failure taxonomy onto gRPC codes.
func rpcError(err error) error {
	switch {
	case errors.Is(err, pool.ErrAmountZero),
		errors.Is(err, pool.ErrAmountOutOfRange),
		errors.Is(err, pool.ErrTokenNotSupported):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, pool.ErrNotOrderOwner):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, pool.ErrOrderNotActive),
		errors.Is(err, pool.ErrNotMatchingPool):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, pool.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// -------------------- Service descriptor --------------------

func unary[Req, Resp any](method string, fn func(*Server, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(*Server), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(srv.(*Server), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var poolServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*interface{})(nil),
	Methods: []grpc.MethodDesc{
		unary("SubmitOrder", (*Server).SubmitOrder),
		unary("CancelOrder", (*Server).CancelOrder),
		unary("JoinPool", (*Server).JoinPool),
		unary("AddUserToPool", (*Server).AddUserToPool),
		unary("RunBatchMatching", (*Server).RunBatchMatching),
		unary("SubmitSettlementResult", (*Server).SubmitSettlementResult),
		unary("GetPoolConfig", (*Server).GetPoolConfig),
		unary("GetActiveUsers", (*Server).GetActiveUsers),
		unary("GetActiveOrders", (*Server).GetActiveOrders),
		unary("GetUserOrders", (*Server).GetUserOrders),
		unary("GetBatchResult", (*Server).GetBatchResult),
		unary("GetBatchOrders", (*Server).GetBatchOrders),
		unary("GetMode", (*Server).GetMode),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "meropools/v1/pool_service",
}
