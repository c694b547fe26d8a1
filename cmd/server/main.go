package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"meropools/api/grpcserver"
	"meropools/domain/pool"
	"meropools/infra/kafka"
	"meropools/infra/outbox"
	"meropools/jobs/broadcaster"
	"meropools/service"
)

func main() {
	var (
		listenAddr = flag.String("listen", ":50051", "gRPC listen address")
		outboxDir  = flag.String("outbox", "./outbox", "notification outbox directory")
		brokers    = flag.String("brokers", "", "comma-separated Kafka brokers (empty disables broadcast)")
		topic      = flag.String("topic", "meropools.events", "Kafka topic for notifications")
		interval   = flag.Duration("broadcast-interval", 2*time.Second, "outbox drain interval")

		mode       = flag.String("mode", "matching_pool", "operating mode: user_private or matching_pool")
		admin      = flag.String("admin", "admin", "context executor identity")
		poolName   = flag.String("pool-name", "MeroPools Main", "pool name")
		minAmount  = flag.Uint64("min-amount", 1, "minimum order amount")
		maxAmount  = flag.Uint64("max-amount", 1_000_000_000, "maximum order amount")
		tokens     = flag.String("tokens", "VET,VTHO", "comma-separated supported tokens")
		batchFreq  = flag.Uint64("batch-frequency", 30, "batch frequency in seconds")
		feeBps     = flag.Uint("fee-bps", 25, "pool fee in basis points")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	// ---------------- Outbox ----------------

	ob, err := outbox.Open(*outboxDir)
	if err != nil {
		log.WithError(err).Fatal("outbox init failed")
	}
	defer ob.Close()

	// ---------------- Service ----------------

	cfg := service.Config{
		Admin:  pool.UserID(*admin),
		Outbox: ob,
		Log:    log,
	}
	switch *mode {
	case "matching_pool":
		cfg.Mode = pool.MatchingPool
		cfg.PoolConfig = &pool.PoolConfig{
			PoolName:              *poolName,
			MinOrderAmount:        *minAmount,
			MaxOrderAmount:        *maxAmount,
			SupportedTokens:       strings.Split(*tokens, ","),
			BatchFrequencySeconds: *batchFreq,
			FeeBasisPoints:        uint32(*feeBps),
			CreatedAt:             uint64(time.Now().UnixNano()),
		}
	case "user_private":
		cfg.Mode = pool.UserPrivate
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	svc := service.New(cfg)

	// ---------------- Broadcaster ----------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *brokers != "" {
		producer := kafka.NewProducer(strings.Split(*brokers, ","), *topic)
		defer producer.Close()

		bc := broadcaster.New(ob, producer, *interval, log)
		go bc.Run(ctx)
	} else {
		log.Warn("no brokers configured; notifications stay queued in the outbox")
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.WithError(err).Fatal("listen failed")
	}

	grpcSrv := grpc.NewServer()
	grpcserver.NewServer(svc).Register(grpcSrv)

	go func() {
		<-ctx.Done()
		grpcSrv.GracefulStop()
	}()

	log.WithField("addr", *listenAddr).Info("meropools server running")
	if err := grpcSrv.Serve(lis); err != nil {
		log.WithError(err).Fatal("gRPC server exited")
	}
}
