// demo runs a full pool lifecycle in-process: commitments are built,
// orders submitted, a batch matched and settled, and the queued
// notifications drained from the outbox at the end.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"meropools/domain/pool"
	"meropools/infra/outbox"
	"meropools/infra/wire"
	"meropools/pkg/commitment"
	"meropools/service"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	dir, err := os.MkdirTemp("", "meropools-demo-*")
	if err != nil {
		log.WithError(err).Fatal("temp dir")
	}
	defer os.RemoveAll(dir)

	ob, err := outbox.Open(dir)
	if err != nil {
		log.WithError(err).Fatal("outbox init failed")
	}
	defer ob.Close()

	svc := service.New(service.Config{
		Mode:  pool.MatchingPool,
		Admin: "demo-admin",
		PoolConfig: &pool.PoolConfig{
			PoolName:              "Demo Pool",
			MinOrderAmount:        10,
			MaxOrderAmount:        1_000_000,
			SupportedTokens:       []string{"VET", "VTHO"},
			BatchFrequencySeconds: 30,
			FeeBasisPoints:        25,
			CreatedAt:             uint64(time.Now().UnixNano()),
		},
		Outbox: ob,
		Log:    log,
	})

	// Four traders, four escrowed orders.
	prices := []uint64{100, 110, 95, 105}
	for i, price := range prices {
		user := pool.UserID("user-" + uuid.NewString())

		now := uint64(time.Now().UnixNano())
		c, err := commitment.Build(commitment.Terms{
			Token:             "VET",
			Amount:            500 + uint64(i)*50,
			ExpectedToken:     "VTHO",
			ExpectedPrice:     price,
			SettlementAddress: "0xdemo",
		}, now, uint64(time.Hour))
		if err != nil {
			log.WithError(err).Fatal("commitment build failed")
		}
		if err := commitment.Validate(c); err != nil {
			log.WithError(err).Fatal("commitment rejected")
		}

		orderID, err := svc.SubmitOrder(user, pool.OrderTerms{
			Commitment:            c,
			TokenDeposited:        "VET",
			AmountDeposited:       500 + uint64(i)*50,
			EscrowConfirmed:       true,
			SettlementAddress:     "0xdemo",
			ExpectedPrice:         price,
			ExpectedExchangeToken: "VTHO",
			TimeLimit:             now + uint64(time.Hour),
		})
		if err != nil {
			log.WithError(err).Fatal("submit failed")
		}
		log.WithField("order_id", orderID).Info("order placed")
	}

	batchID, err := svc.RunBatchMatching()
	if err != nil {
		log.WithError(err).Fatal("batch failed")
	}

	result, ok := svc.BatchResult(batchID)
	if !ok {
		log.Fatal("batch result missing")
	}
	log.WithFields(logrus.Fields{
		"batch_id":       batchID,
		"pairs":          len(result.MatchedOrders),
		"clearing_price": result.ClearingPrice,
		"total_volume":   result.TotalVolume,
	}).Info("batch matched")

	txHash := "0x" + uuid.NewString()
	svc.SubmitSettlementResult(batchID, txHash)

	_, orders, _ := svc.BatchOrders(batchID)
	for _, o := range orders {
		fmt.Printf("  %s  status=%s  tx=%s\n", o.ID, o.Status.Kind, o.SettlementTx)
	}

	// Everything the run produced is still queued for broadcast.
	fmt.Println("queued notifications:")
	err = ob.ScanPending(func(rec outbox.Record) error {
		ev, err := wire.DecodeEvent(rec.Payload)
		if err != nil {
			return fmt.Errorf("record %d: %w", rec.Seq, err)
		}
		fmt.Printf("  #%d %s %+v\n", rec.Seq, ev.Name(), ev)
		return nil
	})
	if err != nil {
		log.WithError(err).Fatal("outbox scan failed")
	}
}
