package timer

import (
	"sync"
	"testing"
	"time"
)

// recordingLedger is a Ledger that hands out a fixed countdown and
// records every call
type recordingLedger struct {
	mu          sync.Mutex
	beginReturn int
	begins      int
	checkpoints []int
	finalizes   int
}

func (l *recordingLedger) BeginOrResume(username string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.begins++
	return l.beginReturn, nil
}

func (l *recordingLedger) Checkpoint(username string, secondsLeft int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkpoints = append(l.checkpoints, secondsLeft)
	return nil
}

func (l *recordingLedger) Finalize(username string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finalizes++
	return 0, nil
}

func (l *recordingLedger) counts() (begins, checkpoints, finalizes int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.begins, len(l.checkpoints), l.finalizes
}

func newTestTimekeeper(beginReturn int) (*Timekeeper, *recordingLedger) {
	ledger := &recordingLedger{beginReturn: beginReturn}
	tk := New(ledger)
	tk.interval = time.Millisecond
	return tk, ledger
}

func TestBeginStartsCountdown(t *testing.T) {
	tk, _ := newTestTimekeeper(600)

	seconds, err := tk.Begin("zosia", nil)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if seconds != 600 {
		t.Errorf("Begin() = %d, want 600", seconds)
	}

	if _, ok := tk.Remaining("zosia"); !ok {
		t.Error("no live countdown after Begin")
	}

	tk.Shutdown()
}

func TestBeginWithNoTimeFinalizesImmediately(t *testing.T) {
	tk, ledger := newTestTimekeeper(0)

	seconds, err := tk.Begin("zosia", nil)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if seconds != 0 {
		t.Errorf("Begin() = %d, want 0", seconds)
	}

	if _, _, finalizes := ledger.counts(); finalizes != 1 {
		t.Errorf("finalizes = %d, want 1", finalizes)
	}
	if _, ok := tk.Remaining("zosia"); ok {
		t.Error("countdown running for an empty ledger")
	}
}

func TestCountdownExpiresAndFinalizes(t *testing.T) {
	tk, ledger := newTestTimekeeper(3)

	expired := make(chan string, 1)
	if _, err := tk.Begin("zosia", func(username string) { expired <- username }); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	select {
	case username := <-expired:
		if username != "zosia" {
			t.Errorf("onExpire got %q, want zosia", username)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never expired")
	}

	if _, _, finalizes := ledger.counts(); finalizes != 1 {
		t.Errorf("finalizes = %d, want 1", finalizes)
	}
	if _, ok := tk.Remaining("zosia"); ok {
		t.Error("expired countdown still registered")
	}
}

func TestCountdownCheckpoints(t *testing.T) {
	tk, ledger := newTestTimekeeper(25)

	if _, err := tk.Begin("zosia", nil); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, checkpoints, _ := ledger.counts(); checkpoints >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("countdown never checkpointed twice")
		}
		time.Sleep(time.Millisecond)
	}

	tk.Shutdown()
}

func TestExitFinalizesAndStopsCountdown(t *testing.T) {
	tk, ledger := newTestTimekeeper(600)

	if _, err := tk.Begin("zosia", nil); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err := tk.Exit("zosia"); err != nil {
		t.Fatalf("Exit() error = %v", err)
	}

	if _, _, finalizes := ledger.counts(); finalizes != 1 {
		t.Errorf("finalizes = %d, want 1", finalizes)
	}
	if _, ok := tk.Remaining("zosia"); ok {
		t.Error("countdown still registered after Exit")
	}
}

func TestExitWithoutCountdownStillFinalizes(t *testing.T) {
	// Exit always reaches the ledger so an orphaned session (from a
	// previous process) is finalized even with no live countdown
	tk, ledger := newTestTimekeeper(600)

	if _, err := tk.Exit("zosia"); err != nil {
		t.Fatalf("Exit() error = %v", err)
	}
	if _, _, finalizes := ledger.counts(); finalizes != 1 {
		t.Errorf("finalizes = %d, want 1", finalizes)
	}
}

func TestBeginReplacesRunningCountdown(t *testing.T) {
	tk, ledger := newTestTimekeeper(600)

	if _, err := tk.Begin("zosia", nil); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err := tk.Begin("zosia", nil); err != nil {
		t.Fatalf("second Begin() error = %v", err)
	}

	if begins, _, _ := ledger.counts(); begins != 2 {
		t.Errorf("begins = %d, want 2", begins)
	}

	tk.mu.Lock()
	live := len(tk.active)
	tk.mu.Unlock()
	if live != 1 {
		t.Errorf("live countdowns = %d, want 1", live)
	}

	tk.Shutdown()
}

func TestShutdownCheckpointsWithoutFinalizing(t *testing.T) {
	tk, ledger := newTestTimekeeper(600)

	if _, err := tk.Begin("zosia", nil); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	tk.Shutdown()

	_, checkpoints, finalizes := ledger.counts()
	if checkpoints < 1 {
		t.Error("Shutdown did not checkpoint the countdown")
	}
	if finalizes != 0 {
		t.Errorf("finalizes = %d, want 0 (sessions must survive shutdown)", finalizes)
	}
	if _, ok := tk.Remaining("zosia"); ok {
		t.Error("countdown still registered after Shutdown")
	}
}
