// Package sync refreshes the task list from the remote API in the
// background so the view stays current without manual reloads.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/task"
)

// State represents the current state of the background refresher.
type State int

const (
	Idle State = iota
	Running
	Errored
)

// Status holds the refresher's current state and last successful run.
type Status struct {
	State    State
	LastSync time.Time
	Error    error
}

// RefreshResultMsg is a tea.Msg sent when a background refresh completes.
type RefreshResultMsg struct {
	Tasks  []model.Task
	Filter model.Filter
	Err    error
}

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// defaultInterval is used when no refresh interval is configured.
const defaultInterval = 120 * time.Second

// Poller periodically fetches the task list and reports results to the
// Bubble Tea runtime over a channel.
type Poller struct {
	svc      *task.Service
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	filter  model.Filter
	status  Status
	running bool
}

// New creates a Poller for the given task service. interval <= 0 falls
// back to the default.
func New(svc *task.Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		svc:       svc,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		filter:    model.FilterAll,
	}
}

// Start launches the polling goroutine and returns a command that waits
// for the first result. Calling Start on a running poller is a no-op.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// SetFilter changes the status filter used by subsequent refreshes.
func (p *Poller) SetFilter(f model.Filter) {
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
}

// Refresh triggers an immediate fetch outside the regular interval.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// GetStatus returns the refresher's current status.
func (p *Poller) GetStatus() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// loop runs the refresh cycle until Stop is called. The interval timer
// resets after a manual trigger so a refresh never fires twice in a row.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch()
		case <-p.triggerCh:
			p.fetch()
			ticker.Reset(p.interval)
		}
	}
}

// fetch performs a single list call and publishes the result.
func (p *Poller) fetch() {
	p.mu.Lock()
	filter := p.filter
	p.status.State = Running
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	tasks, err := p.svc.List(ctx, filter)

	p.mu.Lock()
	if err != nil {
		p.status.State = Errored
		p.status.Error = err
	} else {
		p.status.State = Idle
		p.status.Error = nil
		p.status.LastSync = time.Now()
	}
	p.mu.Unlock()

	p.sendResult(RefreshResultMsg{Tasks: tasks, Filter: filter, Err: err})
}

// sendResult publishes a result without blocking the polling goroutine.
func (p *Poller) sendResult(msg RefreshResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

// waitForResult returns a tea.Cmd that waits for the next refresh result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult re-arms the result subscription. Call it after
// handling a RefreshResultMsg to keep receiving results.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
