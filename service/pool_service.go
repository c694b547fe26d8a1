package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"meropools/domain/pool"
	"meropools/infra/wire"
)

// Outbox is where committed notifications land for later broadcast.
type Outbox interface {
	Append(payload []byte) (uint64, error)
}

// Config wires a PoolService.
type Config struct {
	Mode       pool.OperatingMode
	PoolConfig *pool.PoolConfig
	Admin      pool.UserID
	Outbox     Outbox
	Log        *logrus.Logger

	// Now defaults to time.Now. Each operation reads it exactly once.
	Now func() time.Time
}

// PoolService owns one context state for its lifetime.
type PoolService struct {
	state  *pool.State
	outbox Outbox
	log    *logrus.Logger
	now    func() time.Time
}

func New(cfg Config) *PoolService {
	s := &PoolService{
		outbox: cfg.Outbox,
		log:    cfg.Log,
		now:    cfg.Now,
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.state = pool.New(cfg.Mode, cfg.PoolConfig, cfg.Admin, pool.EmitterFunc(s.emit))

	s.log.WithFields(logrus.Fields{
		"mode":  cfg.Mode.String(),
		"admin": cfg.Admin,
	}).Info("pool context initialized")
	return s
}

// emit runs after the domain committed the mutation; a failed outbox
// append loses the notification but never the state change.
func (s *PoolService) emit(ev pool.Event) {
	payload, err := wire.EncodeEvent(ev)
	if err != nil {
		s.log.WithError(err).WithField("event", ev.Name()).Error("event encode failed")
		return
	}

	if s.outbox != nil {
		if _, err := s.outbox.Append(payload); err != nil {
			s.log.WithError(err).WithField("event", ev.Name()).Error("outbox append failed")
			return
		}
	}

	s.log.WithField("event", ev.Name()).Debug("notification queued")
}

func (s *PoolService) callTime() uint64 {
	return uint64(s.now().UnixNano())
}

// -------------------- Commands --------------------

func (s *PoolService) SubmitOrder(user pool.UserID, terms pool.OrderTerms) (string, error) {
	orderID, err := s.state.SubmitOrder(user, terms, s.callTime())
	if err != nil {
		s.log.WithError(err).WithField("user_id", user).Warn("order rejected")
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"user_id":  user,
	}).Info("order submitted")
	return orderID, nil
}

func (s *PoolService) CancelOrder(user pool.UserID, orderID string) error {
	if err := s.state.CancelOrder(user, orderID, s.callTime()); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": orderID,
			"user_id":  user,
		}).Warn("cancel rejected")
		return err
	}

	s.log.WithField("order_id", orderID).Info("order cancelled")
	return nil
}

func (s *PoolService) JoinPool(user pool.UserID) error {
	if err := s.state.JoinPool(user); err != nil {
		return err
	}
	s.log.WithField("user_id", user).Info("user joined pool")
	return nil
}

func (s *PoolService) AddUserToPool(user pool.UserID) error {
	if err := s.state.AddUserToPool(user); err != nil {
		return err
	}
	s.log.WithField("user_id", user).Info("user added to pool")
	return nil
}

func (s *PoolService) RunBatchMatching() (string, error) {
	batchID, err := s.state.RunBatchMatching(s.callTime())
	if err != nil {
		s.log.WithError(err).Warn("batch matching rejected")
		return "", err
	}

	s.log.WithField("batch_id", batchID).Info("batch matching completed")
	return batchID, nil
}

func (s *PoolService) SubmitSettlementResult(batchID, txHash string) {
	s.state.SubmitSettlementResult(batchID, txHash, s.callTime())

	s.log.WithFields(logrus.Fields{
		"batch_id": batchID,
		"tx_hash":  txHash,
	}).Info("settlement recorded")
}

// -------------------- Queries --------------------

func (s *PoolService) Mode() pool.OperatingMode { return s.state.Mode() }

func (s *PoolService) PoolConfig() *pool.PoolConfig { return s.state.Config() }

func (s *PoolService) ActiveUsers() []pool.UserID { return s.state.ActiveUsers() }

func (s *PoolService) ActiveOrders() []pool.UserOrder { return s.state.ActiveOrders() }

func (s *PoolService) UserOrders(user pool.UserID) []pool.UserOrder {
	return s.state.UserOrders(user)
}

func (s *PoolService) BatchResult(batchID string) (pool.BatchMatchResult, bool) {
	return s.state.BatchResult(batchID)
}

func (s *PoolService) BatchOrders(batchID string) (pool.BatchMatchResult, []pool.UserOrder, bool) {
	return s.state.BatchOrders(batchID)
}
