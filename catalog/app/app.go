package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/Astemirdum/library-catalog/catalog/internal/handler"
	"github.com/Astemirdum/library-catalog/catalog/internal/library"
	"github.com/Astemirdum/library-catalog/catalog/internal/publisher"
	"github.com/Astemirdum/library-catalog/catalog/internal/server"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
	cb "github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, cfg)
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "catalog")
	defer log.Sync() //nolint:errcheck

	pub, closePub, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePub()

	lib := library.New(libraryOptions(cfg.Lending)...)
	svc := service.NewService(lib, pub, log.Named("service"))
	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
			zap.Int("maxLoans", lib.MaxLoans()))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "catalog server")
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func libraryOptions(cfg config.Lending) []library.Option {
	ops := []library.Option{library.WithMaxLoans(cfg.MaxLoans)}
	if cfg.ValidateUpdates {
		ops = append(ops, library.WithUpdateValidation())
	}
	return ops
}

func newPublisher(cfg *config.Config, log *zap.Logger) (publisher.Publisher, func(), error) {
	if !cfg.Kafka.Enabled() {
		log.Info("kafka disabled, lending events are not published")
		return publisher.NewNopPublisher(), func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
	return publisher.NewKafkaPublisher(producer, kafka.LendingTopic, cb.New(cfg.Publisher)), closeFn, nil
}
