package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fittrack/fittrack/internal/api/metrics"
	"github.com/fittrack/fittrack/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrStopped is returned by Enqueue once the workers have shut down.
var ErrStopped = errors.New("reset mail dispatcher stopped")

// Dispatcher delivers reset mails on a fixed set of workers. Mails for the
// same address always land on the same worker, so they go out in order.
type Dispatcher struct {
	workers []chan ports.ResetMail
	mailer  ports.Mailer
	log     zerolog.Logger
	stopped <-chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ResetMail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ResetMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.stopped = ctx.Done()
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands mail to its worker. When that worker's buffer is full it
// waits until there is room, ctx is done or the dispatcher stops.
func (d *Dispatcher) Enqueue(ctx context.Context, mail ports.ResetMail) error {
	select {
	case <-d.stopped:
		return ErrStopped
	default:
	}

	i := d.shardIndex(mail.Email)
	select {
	case d.workers[i] <- mail:
	case <-ctx.Done():
		return fmt.Errorf("enqueue reset mail: %w", ctx.Err())
	case <-d.stopped:
		return ErrStopped
	}
	metrics.ResetMailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	return nil
}

func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ResetMail) {
	depth := metrics.ResetMailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))

			start := time.Now()
			err := d.mailer.SendReset(ctx, mail)
			metrics.ResetMailDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ResetMailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("email", mail.Email).
					Int("worker_id", id).
					Msg("reset mail delivery failed")
				continue
			}
			metrics.ResetMailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
