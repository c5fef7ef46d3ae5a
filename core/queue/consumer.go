package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HandlerFunc processes one job.
type HandlerFunc func(ctx context.Context, job *Job) error

// Registry maps job names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a handler to a job name. Names are unique.
func (r *Registry) Register(name string, h HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("job name is empty")
	}
	if h == nil {
		return fmt.Errorf("nil handler for job %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler already registered for job %s", name)
	}
	r.handlers[name] = h
	return nil
}

// Get returns the handler registered for name.
func (r *Registry) Get(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Consumer pulls jobs from a Broker and runs the registered handler, one job per loop at a time.
type Consumer struct {
	broker      Broker
	registry    *Registry
	logger      *zap.Logger
	concurrency int
	poll        time.Duration
}

// NewConsumer creates a consumer with cfg's concurrency and poll timeout.
func NewConsumer(broker Broker, registry *Registry, logger *zap.Logger, cfg Config) *Consumer {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	poll := time.Duration(cfg.PollSeconds) * time.Second
	if poll <= 0 {
		poll = time.Second
	}
	return &Consumer{
		broker:      broker,
		registry:    registry,
		logger:      logger.With(zap.String("component", "queue_consumer")),
		concurrency: concurrency,
		poll:        poll,
	}
}

// Run starts the consumer loops and blocks until ctx is cancelled and every loop returned.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("Starting job consumer", zap.Int("concurrency", c.concurrency))

	var wg sync.WaitGroup
	wg.Add(c.concurrency)
	for i := 0; i < c.concurrency; i++ {
		go func(loopID int) {
			defer wg.Done()
			c.loop(ctx, loopID)
		}(i + 1)
	}
	wg.Wait()
}

func (c *Consumer) loop(ctx context.Context, loopID int) {
	for {
		if ctx.Err() != nil {
			c.logger.Info("Consumer loop stopped", zap.Int("loop_id", loopID))
			return
		}

		job, err := c.broker.Dequeue(ctx, c.poll)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Warn("Dequeue failed", zap.Int("loop_id", loopID), zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(c.poll):
			}
			continue
		}
		if job == nil {
			continue
		}

		if err := c.Process(ctx, job); err != nil {
			c.logger.Error("Job failed",
				zap.Int("loop_id", loopID),
				zap.String("job", job.Name),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			if dlErr := c.broker.DeadLetter(ctx, job, err); dlErr != nil {
				c.logger.Warn("Dead letter write failed", zap.String("job_id", job.ID), zap.Error(dlErr))
			}
		}
	}
}

// Process runs the handler for one job and converts a handler panic into an error.
func (c *Consumer) Process(ctx context.Context, job *Job) (err error) {
	h, ok := c.registry.Get(job.Name)
	if !ok {
		return fmt.Errorf("no handler registered for job %s", job.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
	}()

	return h(ctx, job)
}
