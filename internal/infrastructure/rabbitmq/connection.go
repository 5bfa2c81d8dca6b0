// Package rabbitmq publica eventos de solicitudes en un exchange topic de RabbitMQ.
package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kossodo/merch-api/pkg/config"
	"github.com/kossodo/merch-api/pkg/logger"
)

// ExchangeType tipo del exchange declarado.
const ExchangeType = "topic"

const (
	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// SetupConn conecta al broker con reintentos y declara el exchange durable.
func SetupConn(ctx context.Context, cfg config.AMQPConfig, log *logger.Logger) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("rabbitmq: no se pudo conectar")
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: conectar: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: declarar exchange %q: %w", cfg.Exchange, err)
	}

	return conn, ch, nil
}
