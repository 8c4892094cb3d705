package client

import (
	"context"
	"testing"
	"time"
)

// scriptedProbe blocks until the test sends a result on the returned channel.
func scriptedProbe() (ProbeFunc, chan bool) {
	results := make(chan bool, 16)
	fn := func(ctx context.Context) (bool, error) {
		return <-results, nil
	}
	return fn, results
}

func waitStatus(t *testing.T, statuses chan ProbeStatus, want ProbeStatus) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-statuses:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %v", want)
		}
	}
}

func TestProbeReportsHitAndMiss(t *testing.T) {
	probe, results := scriptedProbe()
	statuses := make(chan ProbeStatus, 16)
	p := NewProbe(time.Millisecond, func(s ProbeStatus) { statuses <- s })

	p.Check(probe)
	waitStatus(t, statuses, ProbeChecking)
	results <- true
	waitStatus(t, statuses, ProbeHit)

	p.Check(probe)
	waitStatus(t, statuses, ProbeChecking)
	results <- false
	waitStatus(t, statuses, ProbeMiss)
}

func TestProbeNilCheckStaysIdle(t *testing.T) {
	p := NewProbe(time.Millisecond, nil)

	p.Check(nil)
	time.Sleep(20 * time.Millisecond)
	if got := p.Status(); got != ProbeIdle {
		t.Errorf("expected idle, got %v", got)
	}
}

func TestProbeDebounceSupersedesPending(t *testing.T) {
	calls := make(chan struct{}, 16)
	probe := func(ctx context.Context) (bool, error) {
		calls <- struct{}{}
		return true, nil
	}

	p := NewProbe(50*time.Millisecond, nil)
	p.Check(probe)
	p.Check(probe)
	p.Check(probe)

	// Only the last scheduled check fires.
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for probe call")
	}
	select {
	case <-calls:
		t.Fatal("superseded pending check still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestProbeResetIgnoresInFlightResponse(t *testing.T) {
	probe, results := scriptedProbe()
	statuses := make(chan ProbeStatus, 16)
	p := NewProbe(time.Millisecond, func(s ProbeStatus) { statuses <- s })

	p.Check(probe)
	waitStatus(t, statuses, ProbeChecking)

	p.Reset()
	results <- true

	time.Sleep(20 * time.Millisecond)
	if got := p.Status(); got != ProbeIdle {
		t.Errorf("expected idle after reset, got %v", got)
	}

	// After Resume, checks work again.
	p.Resume()
	p.Check(probe)
	waitStatus(t, statuses, ProbeChecking)
	results <- true
	waitStatus(t, statuses, ProbeHit)
}

func TestProbeErrorReturnsToIdle(t *testing.T) {
	probe := func(ctx context.Context) (bool, error) {
		return false, context.DeadlineExceeded
	}
	statuses := make(chan ProbeStatus, 16)
	p := NewProbe(time.Millisecond, func(s ProbeStatus) { statuses <- s })

	p.Check(probe)
	waitStatus(t, statuses, ProbeChecking)
	waitStatus(t, statuses, ProbeIdle)
}
