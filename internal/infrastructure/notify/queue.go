// Package notify desacopla el alta de solicitudes de los canales de aviso (correo, eventos).
// El caso de uso solo encola; un worker entrega a cada Sender con timeout propio.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/kossodo/merch-api/internal/application/request"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/pkg/logger"
)

var _ request.Notifier = (*Queue)(nil)

// Sender canal concreto de notificación.
type Sender interface {
	Name() string
	Send(ctx context.Context, req entity.Request) error
}

// Queue cola acotada con un worker. Submit nunca bloquea: si la cola está llena se descarta y se registra.
type Queue struct {
	items       chan entity.Request
	senders     []Sender
	log         *logger.Logger
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewQueue crea la cola y arranca el worker.
func NewQueue(size int, sendTimeout time.Duration, log *logger.Logger, senders ...Sender) *Queue {
	if size <= 0 {
		size = 1
	}
	q := &Queue{
		items:       make(chan entity.Request, size),
		senders:     senders,
		log:         log,
		sendTimeout: sendTimeout,
		done:        make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit encola la solicitud para notificar.
func (q *Queue) Submit(req entity.Request) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.log.Warn().Int64("solicitud_id", req.ID).Msg("cola de notificaciones cerrada, aviso descartado")
		return
	}
	select {
	case q.items <- req:
	default:
		q.log.Warn().Int64("solicitud_id", req.ID).Msg("cola de notificaciones llena, aviso descartado")
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for req := range q.items {
		q.deliver(req)
	}
}

func (q *Queue) deliver(req entity.Request) {
	if len(q.senders) == 0 {
		q.log.Info().Int64("solicitud_id", req.ID).Msg("sin canales de notificación configurados")
		return
	}
	for _, s := range q.senders {
		ctx, cancel := context.WithTimeout(context.Background(), q.sendTimeout)
		err := s.Send(ctx, req)
		cancel()
		if err != nil {
			q.log.Error().Err(err).Str("canal", s.Name()).Int64("solicitud_id", req.ID).Msg("falló la notificación")
			continue
		}
		q.log.Info().Str("canal", s.Name()).Int64("solicitud_id", req.ID).Msg("notificación enviada")
	}
}

// Close deja de aceptar avisos y espera a que se entreguen los pendientes o venza ctx.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.items)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
