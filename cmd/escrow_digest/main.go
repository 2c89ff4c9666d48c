// Command escrow_digest publishes the missed payout digest to Kafka ahead of
// each Tuesday and Friday payout slot.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"challenz/internal/config"
	"challenz/internal/events/kafka"
	"challenz/internal/logging"
	"challenz/internal/repositories"
	"challenz/internal/services/escrow"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred closes always happen.
func run(args []string) int {
	flags := flag.NewFlagSet("escrow_digest", flag.ContinueOnError)
	once := flags.Bool("once", false, "publish a single digest and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	config.LoadEnv()
	log := logging.New(config.GetEnv("LOG_LEVEL", "info"), config.IsProduction())

	backend, err := repositories.OpenBackend(config.DataSource())
	if err != nil {
		log.WithError(err).Error("failed to open escrow data source")
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Warn("failed to close data source")
		}
	}()

	brokers := config.GetListEnv("KAFKA_BROKERS", []string{"localhost:9092"})
	topic := config.GetEnv("ESCROW_DIGEST_TOPIC", "escrow.missed_payouts")
	publisher := kafka.NewPublisher(brokers, topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("failed to close kafka publisher")
		}
	}()

	cfg := escrow.Config{Location: config.Location()}
	service := escrow.NewService(backend.Escrow, cfg, nil, log)
	job := escrow.NewDigestJob(service, publisher, cfg, log)

	publish := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_, err := job.Run(ctx)
		return err
	}

	if *once {
		if err := publish(); err != nil {
			log.WithError(err).Error("digest run failed")
			return 1
		}
		return 0
	}

	// one hour before each payout slot
	schedule := config.GetEnv("ESCROW_DIGEST_SCHEDULE", "0 9 * * 2,5")
	c := cron.New(cron.WithLocation(cfg.Location))
	if _, err := c.AddFunc(schedule, func() {
		if err := publish(); err != nil {
			log.WithError(err).Error("digest run failed")
		}
	}); err != nil {
		log.WithError(err).WithField("schedule", schedule).Error("invalid digest schedule")
		return 1
	}

	c.Start()
	log.WithFields(logrus.Fields{
		"schedule": schedule,
		"topic":    topic,
	}).Info("escrow digest scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	log.Info("escrow digest scheduler stopped")
	return 0
}
