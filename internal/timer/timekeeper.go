package timer

import (
	"log"
	"sync"
	"time"
)

// Ledger is the slice of the ledger service the timekeeper drives
type Ledger interface {
	BeginOrResume(username string) (int, error)
	Checkpoint(username string, secondsLeft int) error
	Finalize(username string) (int, error)
}

// checkpointEvery is how many ticks pass between persisted checkpoints.
// An ungraceful termination can under-record at most this many seconds;
// the wall-clock resume in the ledger recovers the rest.
const checkpointEvery = 10

// Timekeeper runs at most one live countdown per username, ticking once
// per second, checkpointing every tenth tick and finalizing the ledger
// session when the countdown reaches zero. Starting a countdown for a
// user who already has one cancels the old one first, so a session can
// never be counted twice.
type Timekeeper struct {
	mu       sync.Mutex
	active   map[string]*countdown
	ledger   Ledger
	interval time.Duration
}

type countdown struct {
	username string

	mu      sync.Mutex
	seconds int

	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// New creates a timekeeper ticking at one-second resolution
func New(ledger Ledger) *Timekeeper {
	return &Timekeeper{
		active:   make(map[string]*countdown),
		ledger:   ledger,
		interval: time.Second,
	}
}

// Begin starts or resumes the countdown for a user and returns the
// seconds it will run with. A countdown of zero seconds finalizes the
// session immediately instead of starting a ticker. onExpire, if not
// nil, runs after a countdown reaches zero and the session is finalized.
func (tk *Timekeeper) Begin(username string, onExpire func(username string)) (int, error) {
	tk.cancel(username)

	seconds, err := tk.ledger.BeginOrResume(username)
	if err != nil {
		return 0, err
	}

	if seconds <= 0 {
		if _, err := tk.ledger.Finalize(username); err != nil {
			return 0, err
		}
		return 0, nil
	}

	cd := &countdown{
		username: username,
		seconds:  seconds,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	tk.mu.Lock()
	tk.active[username] = cd
	tk.mu.Unlock()

	go tk.run(cd, onExpire)

	return seconds, nil
}

// Remaining returns the live countdown value for a user. ok is false
// when no countdown is running.
func (tk *Timekeeper) Remaining(username string) (seconds int, ok bool) {
	tk.mu.Lock()
	cd, ok := tk.active[username]
	tk.mu.Unlock()
	if !ok {
		return 0, false
	}

	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.seconds, true
}

// Exit cancels the user's countdown and finalizes the session
// synchronously, returning the minutes added to the ledger's usage
func (tk *Timekeeper) Exit(username string) (int, error) {
	tk.cancel(username)
	return tk.ledger.Finalize(username)
}

// Shutdown cancels all countdowns and checkpoints each one. Sessions
// stay active in the ledger so they resume from the wall clock when the
// server comes back.
func (tk *Timekeeper) Shutdown() {
	tk.mu.Lock()
	countdowns := make([]*countdown, 0, len(tk.active))
	for _, cd := range tk.active {
		countdowns = append(countdowns, cd)
	}
	tk.active = make(map[string]*countdown)
	tk.mu.Unlock()

	for _, cd := range countdowns {
		cd.cancel()
		cd.mu.Lock()
		seconds := cd.seconds
		cd.mu.Unlock()
		if err := tk.ledger.Checkpoint(cd.username, seconds); err != nil {
			log.Printf("Error checkpointing session for %s during shutdown: %v", cd.username, err)
		}
	}
}

// cancel stops and waits out any live countdown for the user without
// touching the ledger
func (tk *Timekeeper) cancel(username string) {
	tk.mu.Lock()
	cd, ok := tk.active[username]
	if ok {
		delete(tk.active, username)
	}
	tk.mu.Unlock()

	if ok {
		cd.cancel()
	}
}

// remove drops the countdown from the registry only if it is still the
// current one for its user
func (tk *Timekeeper) remove(cd *countdown) {
	tk.mu.Lock()
	if current, ok := tk.active[cd.username]; ok && current == cd {
		delete(tk.active, cd.username)
	}
	tk.mu.Unlock()
}

func (tk *Timekeeper) run(cd *countdown, onExpire func(string)) {
	defer close(cd.done)

	ticker := time.NewTicker(tk.interval)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			ticks++

			cd.mu.Lock()
			cd.seconds--
			seconds := cd.seconds
			cd.mu.Unlock()

			if seconds <= 0 {
				tk.remove(cd)
				if _, err := tk.ledger.Finalize(cd.username); err != nil {
					log.Printf("Error finalizing expired session for %s: %v", cd.username, err)
				}
				if onExpire != nil {
					onExpire(cd.username)
				}
				return
			}

			if ticks%checkpointEvery == 0 {
				if err := tk.ledger.Checkpoint(cd.username, seconds); err != nil {
					log.Printf("Error checkpointing session for %s: %v", cd.username, err)
				}
			}
		}
	}
}

func (cd *countdown) cancel() {
	cd.mu.Lock()
	if !cd.stopped {
		cd.stopped = true
		close(cd.stop)
	}
	cd.mu.Unlock()

	<-cd.done
}
