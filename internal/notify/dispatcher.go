package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"member-gateway/internal/notify/metrics"
	"member-gateway/internal/notify/throttle"
)

// Channel quota defaults, matched to the providers' published ceilings.
const (
	primaryRateLimit   = 100
	secondaryRateLimit = 500
	rateWindow         = time.Minute

	primaryThrottleKey   = "channel:primary"
	secondaryThrottleKey = "channel:secondary"
)

// Result is the outcome summary of one dispatch job. When a job is cut off
// by its deadline the counts are a snapshot: sends still in flight may
// complete afterwards without being reflected here.
type Result struct {
	Targets   int
	Succeeded int
	Failed    int
}

// Dispatcher fans a message out to recipients one at a time, falling back
// from the primary to the secondary channel per recipient. A fixed delay
// between sends plus sliding-window quotas keep the providers happy.
type Dispatcher struct {
	primary   Sender
	secondary Sender
	limiter   throttle.Limiter
	delay     time.Duration
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewDispatcher wires the two channel senders. limiter and m may be nil;
// without a limiter only the inter-send delay paces the job.
func NewDispatcher(primary, secondary Sender, limiter throttle.Limiter, delay time.Duration, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		primary:   primary,
		secondary: secondary,
		limiter:   limiter,
		delay:     delay,
		metrics:   m,
		tracer:    otel.Tracer("member-gateway/internal/notify"),
		logger:    logger,
	}
}

// Job is one running dispatch. Counters are atomic so a caller can snapshot
// them while the send loop is still working.
type Job struct {
	targets   int
	succeeded atomic.Int32
	failed    atomic.Int32
	done      chan struct{}
}

// Done is closed when the send loop has finished or stopped on cancellation.
func (j *Job) Done() <-chan struct{} { return j.done }

// Snapshot returns the counts accumulated so far. Exactly one of succeeded
// or failed is incremented per recipient the loop has reached.
func (j *Job) Snapshot() Result {
	return Result{
		Targets:   j.targets,
		Succeeded: int(j.succeeded.Load()),
		Failed:    int(j.failed.Load()),
	}
}

// Start launches the send loop off the caller's goroutine and returns the
// running job. The loop stops promptly when ctx is cancelled, keeping the
// counts recorded up to that point.
func (d *Dispatcher) Start(ctx context.Context, recipients []Recipient, body string) *Job {
	job := &Job{targets: len(recipients), done: make(chan struct{})}

	go func() {
		defer close(job.done)
		d.run(ctx, job, recipients, body)
	}()

	return job
}

func (d *Dispatcher) run(ctx context.Context, job *Job, recipients []Recipient, body string) {
	ctx, span := d.tracer.Start(ctx, "notify.dispatch")
	defer span.End()
	span.SetAttributes(attribute.Int("notify.targets", len(recipients)))

	if d.metrics != nil {
		d.metrics.Dispatches.Inc()
	}

	for i, recipient := range recipients {
		if ctx.Err() != nil {
			d.logger.InfoContext(ctx, "dispatch cancelled",
				"processed", i,
				"targets", len(recipients),
			)
			return
		}

		message := personalize(recipient.Name, body)
		d.sendOne(ctx, job, recipient, message)

		// Inter-send pacing; skipped after the final recipient.
		if i < len(recipients)-1 && d.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(d.delay):
			}
		}
	}

	result := job.Snapshot()
	span.SetAttributes(
		attribute.Int("notify.succeeded", result.Succeeded),
		attribute.Int("notify.failed", result.Failed),
	)
}

// sendOne attempts the primary channel and falls back to the secondary.
// Exactly one counter is incremented per call.
func (d *Dispatcher) sendOne(ctx context.Context, job *Job, recipient Recipient, message string) {
	if d.allow(ctx, primaryThrottleKey, primaryRateLimit) && d.primary.Send(ctx, recipient.PhoneNumber, message) {
		job.succeeded.Add(1)
		if d.metrics != nil {
			d.metrics.SentPrimary.Inc()
		}
		return
	}

	if d.allow(ctx, secondaryThrottleKey, secondaryRateLimit) && d.secondary.Send(ctx, recipient.PhoneNumber, message) {
		job.succeeded.Add(1)
		if d.metrics != nil {
			d.metrics.SentSecondary.Inc()
		}
		return
	}

	job.failed.Add(1)
	if d.metrics != nil {
		d.metrics.SendFailures.Inc()
	}
}

// allow consults the limiter, failing open: a broken limiter backend must
// not stop the dispatch.
func (d *Dispatcher) allow(ctx context.Context, key string, limit int) bool {
	if d.limiter == nil {
		return true
	}
	ok, err := d.limiter.Allow(ctx, key, limit, rateWindow)
	if err != nil {
		d.logger.WarnContext(ctx, "throttle check failed", "key", key, "error", err)
		return true
	}
	return ok
}

// personalize renders the per-recipient message body.
func personalize(name, body string) string {
	return fmt.Sprintf("%s님, 안녕하세요. %s", name, body)
}
