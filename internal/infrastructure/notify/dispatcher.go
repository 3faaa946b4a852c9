package notify

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

const defaultPublishTimeout = 15 * time.Second

type Config struct {
	Workers        int
	PublishTimeout time.Duration
}

// Dispatcher delivers notices on a bounded worker pool so a slow transport
// never holds up the command that produced them.
type Dispatcher struct {
	pool      *ants.Pool
	publisher notification.Publisher
	logger    *logging.Logger
	timeout   time.Duration
	inflight  sync.WaitGroup
}

func NewDispatcher(cfg Config, publisher notification.Publisher, logger *logging.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		pool:      pool,
		publisher: publisher,
		logger:    logger.Named("notify"),
		timeout:   timeout,
	}, nil
}

var _ notification.Notifier = (*Dispatcher)(nil)

func (d *Dispatcher) Notify(ctx context.Context, notice notification.Notice) {
	// Detach from the request so delivery outlives it, keeping the trace link.
	spanCtx := trace.SpanContextFromContext(ctx)

	d.inflight.Add(1)
	err := d.pool.Submit(func() {
		defer d.inflight.Done()

		base := trace.ContextWithSpanContext(context.Background(), spanCtx)
		publishCtx, cancel := context.WithTimeout(base, d.timeout)
		defer cancel()

		if err := d.publisher.Publish(publishCtx, notice); err != nil {
			d.logger.WarnContext(publishCtx, "notice delivery failed",
				"kind", notice.Kind,
				"match_id", notice.MatchID,
				"player_id", notice.PlayerID,
				"error", err,
			)
		}
	})
	if err != nil {
		d.inflight.Done()
		d.logger.WarnContext(ctx, "notice dropped",
			"kind", notice.Kind,
			"match_id", notice.MatchID,
			"error", err,
		)
	}
}

// Close waits for in-flight deliveries and releases the pool.
func (d *Dispatcher) Close() {
	d.inflight.Wait()
	d.pool.Release()
}
