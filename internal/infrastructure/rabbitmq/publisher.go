package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// EventRequestCreated tipo del evento publicado al registrar una solicitud.
const EventRequestCreated = "solicitud.creada"

// Channel subconjunto de *amqp.Channel usado para publicar.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RequestCreatedEvent cuerpo JSON del mensaje.
type RequestCreatedEvent struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Solicitud  requestBody `json:"solicitud"`
}

type requestBody struct {
	ID            int64             `json:"id"`
	Solicitante   string            `json:"solicitante"`
	Grupo         string            `json:"grupo"`
	RUC           string            `json:"ruc"`
	FechaVisita   string            `json:"fecha_visita"`
	CantidadPacks int64             `json:"cantidad_packs"`
	Productos     entity.Quantities `json:"productos"`
	Catalogos     string            `json:"catalogos,omitempty"`
}

// Publisher implementa notify.Sender publicando en RabbitMQ.
type Publisher struct {
	ch       Channel
	exchange string
	now      func() time.Time
}

// NewPublisher construye el publisher sobre un canal ya abierto.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: time.Now}
}

// Name identifica el canal en los logs.
func (p *Publisher) Name() string { return "rabbitmq" }

// RoutingKey solicitud.creada.<grupo>, p. ej. solicitud.creada.kossodo.
func RoutingKey(req entity.Request) string {
	return fmt.Sprintf("%s.%s", EventRequestCreated, req.BusinessUnit)
}

// Send publica el evento solicitud.creada.
func (p *Publisher) Send(ctx context.Context, req entity.Request) error {
	ev := RequestCreatedEvent{
		EventID:    uuid.NewString(),
		Type:       EventRequestCreated,
		OccurredAt: p.now().UTC(),
		Solicitud: requestBody{
			ID:            req.ID,
			Solicitante:   req.Requester,
			Grupo:         string(req.BusinessUnit),
			RUC:           req.TaxID,
			FechaVisita:   req.VisitDate,
			CantidadPacks: req.PackCount,
			Productos:     req.Products.Clone(),
			Catalogos:     req.Catalogs,
		},
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,      // exchange
		RoutingKey(req), // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Type:         ev.Type,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar solicitud %d: %w", req.ID, err)
	}
	return nil
}
