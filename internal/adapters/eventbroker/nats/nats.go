package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moapyr/internal/config"
	"moapyr/internal/core/port"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Consumer pulls bucket notifications from a JetStream stream
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	iter   jetstream.MessagesContext
	wg     sync.WaitGroup
	once   sync.Once
}

// NewNATSConsumer connects to NATS. The connection retries forever after a drop.
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("NATS_URL is required")
	}

	opts := []nats.Option{
		nats.Name(cfg.ConsumerName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Consumer{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// EnsureStream creates the notification stream when the bucket side has not
func (n *Consumer) EnsureStream(ctx context.Context) error {
	_, err := n.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     n.config.StreamName,
		Subjects: []string{n.config.Subject},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", n.config.StreamName, err)
	}
	return nil
}

// Subscribe starts delivering messages to handler until ctx is done or Close is called.
// A handler error naks the message so it is redelivered, at most MaxDeliver times.
func (n *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	consumerCfg := jetstream.ConsumerConfig{
		Durable:       n.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: n.config.Subject,
		AckWait:       n.ackWait(),
		MaxDeliver:    n.maxDeliver(),
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerCfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		return fmt.Errorf("failed to start message iterator: %w", err)
	}
	n.iter = iter

	// Next blocks, so cancellation has to stop the iterator
	go func() {
		<-ctx.Done()
		n.stop()
	}()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.logger.Info("NATS subscription started", "stream", n.config.StreamName, "subject", n.config.Subject)
		for {
			msg, err := iter.Next()
			if err != nil {
				if errors.Is(err, jetstream.ErrMsgIteratorClosed) || ctx.Err() != nil {
					n.logger.Info("NATS subscription stopped")
					return
				}
				n.logger.Error("failed to receive message", "error", err)
				continue
			}
			n.dispatch(ctx, handler, msg)
		}
	}()
	return nil
}

func (n *Consumer) dispatch(ctx context.Context, handler port.MessageService, msg jetstream.Msg) {
	if err := handler.HandleMessage(ctx, msg.Data()); err != nil {
		n.logger.Warn("failed to handle message", "subject", msg.Subject(), "error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			n.logger.Error("failed to nak message", "error", nakErr)
		}
		return
	}
	if ackErr := msg.Ack(); ackErr != nil {
		n.logger.Error("failed to ack message", "error", ackErr)
	}
}

func (n *Consumer) stop() {
	n.once.Do(func() {
		if n.iter != nil {
			n.iter.Stop()
		}
	})
}

func (n *Consumer) ackWait() time.Duration {
	if n.config.AckWait <= 0 {
		return 10 * time.Second
	}
	return n.config.AckWait
}

func (n *Consumer) maxDeliver() int {
	if n.config.MaxDeliver <= 0 {
		return 5
	}
	return n.config.MaxDeliver
}

// Close stops the subscription, waits for the in-flight message and closes the connection
func (n *Consumer) Close() error {
	n.stop()
	n.wg.Wait()

	if n.conn != nil && !n.conn.IsClosed() {
		n.conn.Close()
	}
	return nil
}
