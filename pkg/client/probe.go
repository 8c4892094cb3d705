package client

import (
	"context"
	"sync"
	"time"
)

// DefaultProbeDebounce is the delay before an advisory check (duplicate
// entry, username availability) is issued after the input settles.
const DefaultProbeDebounce = 350 * time.Millisecond

// ProbeStatus is the lifecycle of one advisory check.
type ProbeStatus int

const (
	// ProbeIdle means no check is scheduled or running.
	ProbeIdle ProbeStatus = iota
	// ProbeChecking means the debounce window elapsed and a request is in flight.
	ProbeChecking
	// ProbeHit means the check came back positive (duplicate exists / name taken).
	ProbeHit
	// ProbeMiss means the check came back negative.
	ProbeMiss
)

// ProbeFunc performs one advisory check, e.g. Client.CheckDuplicate or a
// negated Client.UsernameAvailable.
type ProbeFunc func(ctx context.Context) (bool, error)

// Probe debounces advisory boolean checks. Each Check supersedes the
// previous one: a pending timer is cancelled, and a response belonging to a
// superseded check is ignored. Reset (e.g. on dialog close) stops result
// application entirely until Resume.
//
// Probes only warn; they never block a submission. The authoritative
// decision is made server-side at insert time.
type Probe struct {
	delay    time.Duration
	onStatus func(ProbeStatus)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	status  ProbeStatus
	aborted bool
}

// NewProbe creates a Probe with the given debounce delay (0 means
// DefaultProbeDebounce). onStatus, if non-nil, observes every status change.
func NewProbe(delay time.Duration, onStatus func(ProbeStatus)) *Probe {
	if delay == 0 {
		delay = DefaultProbeDebounce
	}
	return &Probe{delay: delay, onStatus: onStatus}
}

// Status returns the current probe status.
func (p *Probe) Status() ProbeStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Check schedules probe after the debounce delay, superseding any earlier
// pending check. Passing nil clears the pending check and returns to idle
// (the input is not worth checking, e.g. an empty field).
func (p *Probe) Check(probe ProbeFunc) {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	gen := p.gen
	p.setStatusLocked(ProbeIdle)

	if probe == nil || p.aborted {
		p.mu.Unlock()
		return
	}

	p.timer = time.AfterFunc(p.delay, func() {
		p.run(gen, probe)
	})
	p.mu.Unlock()
}

func (p *Probe) run(gen uint64, probe ProbeFunc) {
	p.mu.Lock()
	if p.aborted || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.setStatusLocked(ProbeChecking)
	p.mu.Unlock()

	hit, err := probe(context.Background())

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aborted || gen != p.gen {
		return
	}
	switch {
	case err != nil:
		// An advisory check must never block the user on failure.
		p.setStatusLocked(ProbeIdle)
	case hit:
		p.setStatusLocked(ProbeHit)
	default:
		p.setStatusLocked(ProbeMiss)
	}
}

// Reset cancels any pending check, ignores in-flight responses and returns
// to idle. Used on component teardown (e.g. dialog closed).
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aborted = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.setStatusLocked(ProbeIdle)
}

// Resume re-enables checks after a Reset.
func (p *Probe) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aborted = false
}

// setStatusLocked updates the status and notifies the observer.
// Caller must hold p.mu; the observer must not call back into the probe.
func (p *Probe) setStatusLocked(status ProbeStatus) {
	if p.status == status {
		return
	}
	p.status = status
	if p.onStatus != nil {
		p.onStatus(status)
	}
}
