package client

import (
	"context"
	"sync"
	"time"
)

// UpdateFunc receives each polled status, including the terminal one.
type UpdateFunc func(EvaluationStatus)

// Poller tracks in-flight evaluations by polling their status endpoint
// on a fixed interval. One loop runs per evaluation ID; Start is
// idempotent per ID. Poll errors are swallowed and the loop keeps
// going until a terminal status, Stop, or context cancellation.
type Poller struct {
	client   *Client
	interval time.Duration

	mu     sync.Mutex
	active map[string]context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(client *Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{
		client:   client,
		interval: interval,
		active:   make(map[string]context.CancelFunc),
	}
}

// Start begins polling the evaluation and reports false when a loop
// for that ID is already running.
func (p *Poller) Start(ctx context.Context, evaluationID string, onUpdate UpdateFunc) bool {
	p.mu.Lock()
	if _, running := p.active[evaluationID]; running {
		p.mu.Unlock()
		return false
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.active[evaluationID] = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go p.loop(loopCtx, evaluationID, onUpdate)
	return true
}

func (p *Poller) loop(ctx context.Context, evaluationID string, onUpdate UpdateFunc) {
	defer p.wg.Done()
	defer p.remove(evaluationID)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First poll fires immediately so callers see the current state
	// without waiting a full interval.
	if p.poll(ctx, evaluationID, onUpdate) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.poll(ctx, evaluationID, onUpdate) {
				return
			}
		}
	}
}

// poll fetches one status and reports whether the loop should stop.
func (p *Poller) poll(ctx context.Context, evaluationID string, onUpdate UpdateFunc) bool {
	status, err := p.client.GetEvaluationStatus(ctx, evaluationID)
	if err != nil {
		// Transient failures don't stop the loop; the next tick
		// retries.
		return ctx.Err() != nil
	}
	if onUpdate != nil {
		onUpdate(status)
	}
	return status.Terminal()
}

func (p *Poller) remove(evaluationID string) {
	p.mu.Lock()
	if cancel, ok := p.active[evaluationID]; ok {
		cancel()
		delete(p.active, evaluationID)
	}
	p.mu.Unlock()
}

// Stop halts the polling loop for one evaluation, if running.
func (p *Poller) Stop(evaluationID string) {
	p.remove(evaluationID)
}

// Watching reports whether a loop is currently running for the ID.
func (p *Poller) Watching(evaluationID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, running := p.active[evaluationID]
	return running
}

// StopAll halts every loop and waits for them to exit.
func (p *Poller) StopAll() {
	p.mu.Lock()
	for id, cancel := range p.active {
		cancel()
		delete(p.active, id)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// WaitForCompletion polls synchronously until the evaluation reaches a
// terminal status or the context is done.
func (p *Poller) WaitForCompletion(ctx context.Context, evaluationID string, onUpdate UpdateFunc) (EvaluationStatus, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last EvaluationStatus
	for {
		status, err := p.client.GetEvaluationStatus(ctx, evaluationID)
		if err == nil {
			last = status
			if onUpdate != nil {
				onUpdate(status)
			}
			if status.Terminal() {
				return status, nil
			}
		}
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
