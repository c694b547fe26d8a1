// Package broadcaster drains the notification outbox to Kafka on a
// fixed interval. Delivery is at-least-once: a record is marked SENT
// before publishing and ACKED only after the broker accepts it, so a
// crash between the two replays the record.
package broadcaster

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"meropools/infra/outbox"
	"meropools/infra/wire"
)

// Producer is the publishing side, satisfied by infra/kafka.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}

type Broadcaster struct {
	outbox   *outbox.Outbox
	producer Producer
	interval time.Duration
	log      *logrus.Logger
}

func New(ob *outbox.Outbox, producer Producer, interval time.Duration, log *logrus.Logger) *Broadcaster {
	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		interval: interval,
		log:      log,
	}
}

// Run blocks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started")

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("broadcaster stopped")
			return
		case <-ticker.C:
			b.drainOnce(ctx)
		}
	}
}

func (b *Broadcaster) drainOnce(ctx context.Context) {
	err := b.outbox.ScanPending(func(rec outbox.Record) error {
		key := []byte("event")
		if ev, err := wire.DecodeEvent(rec.Payload); err == nil {
			key = []byte(ev.Name())
		}

		if err := b.outbox.MarkSent(rec.Seq); err != nil {
			return err
		}

		if err := b.producer.Send(ctx, key, rec.Payload); err != nil {
			b.log.WithError(err).WithField("seq", rec.Seq).Warn("publish failed, will retry")
			return nil
		}

		return b.outbox.MarkAcked(rec.Seq)
	})
	if err != nil {
		b.log.WithError(err).Error("outbox drain failed")
		return
	}

	if err := b.outbox.PruneAcked(); err != nil {
		b.log.WithError(err).Warn("outbox prune failed")
	}
}
