// tail follows the notification topic and prints decoded events.
package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"meropools/infra/wire"
)

func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "comma-separated Kafka brokers")
		topic   = flag.String("topic", "meropools.events", "notification topic")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stdout)

	cfg := sarama.NewConfig()
	cfg.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(strings.Split(*brokers, ","), cfg)
	if err != nil {
		log.WithError(err).Fatal("consumer init failed")
	}
	defer consumer.Close()

	partition, err := consumer.ConsumePartition(*topic, 0, sarama.OffsetOldest)
	if err != nil {
		log.WithError(err).Fatal("partition consume failed")
	}
	defer partition.Close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	log.WithField("topic", *topic).Info("tailing notifications")

	for {
		select {
		case msg := <-partition.Messages():
			ev, err := wire.DecodeEvent(msg.Value)
			if err != nil {
				log.WithError(err).WithField("offset", msg.Offset).Warn("undecodable message")
				continue
			}
			log.WithFields(logrus.Fields{
				"offset": msg.Offset,
				"event":  ev.Name(),
			}).Infof("%+v", ev)
		case err := <-partition.Errors():
			log.WithError(err.Err).Warn("consume error")
		case <-sigs:
			return
		}
	}
}
