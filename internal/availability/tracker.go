// Package availability drives the interactive username picker: it debounces
// keystrokes, probes the directory for the latest candidate only, and gates
// claim submission on a positive answer.
package availability

import (
	"context"
	"errors"
	"linkbio/internal/profile"
	"log/slog"
	"sync"
	"time"
)

const DefaultDebounce = 500 * time.Millisecond

var ErrNotSubmittable = errors.New("candidate has not been confirmed available")

type State int

const (
	StateIdle State = iota
	StateChecking
	StateAvailable
	StateUnavailable
	StateCurrent
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAvailable:
		return "available"
	case StateUnavailable:
		return "unavailable"
	case StateCurrent:
		return "current"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is the tracker's externally visible state. Message is set for
// StateUnavailable and when a probe failed.
type Status struct {
	State     State  `json:"state"`
	Candidate string `json:"candidate"`
	Message   string `json:"message,omitempty"`
}

// Directory is the server side of the protocol.
type Directory interface {
	CheckAvailability(ctx context.Context, accountID, candidate string) (profile.Verdict, error)
	Claim(ctx context.Context, accountID, desired string) (profile.Verdict, error)
}

// Tracker holds one picker session. onChange runs with the tracker's lock
// held and must not call back into the Tracker.
type Tracker struct {
	mu        sync.Mutex
	dir       Directory
	accountID string
	own       string
	window    time.Duration
	onChange  func(Status)
	log       *slog.Logger

	status   Status
	seq      uint64
	timer    *time.Timer
	inflight context.CancelFunc
	ctx      context.Context
	stop     context.CancelFunc
	stopped  bool
}

func NewTracker(dir Directory, accountID, own string, window time.Duration, onChange func(Status), log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	if window <= 0 {
		window = DefaultDebounce
	}
	if onChange == nil {
		onChange = func(Status) {}
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Tracker{
		dir:       dir,
		accountID: accountID,
		own:       own,
		window:    window,
		onChange:  onChange,
		log:       log.With(slog.String("component", "availability"), slog.String("account_id", accountID)),
		ctx:       ctx,
		stop:      stop,
	}
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Own returns the username the tracker currently treats as the caller's.
func (t *Tracker) Own() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.own
}

// Input records a new candidate. Any pending or in-flight probe for an
// earlier candidate is abandoned.
func (t *Tracker) Input(candidate string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}

	t.seq++
	t.abandonLocked()

	switch {
	case candidate == "":
		t.setLocked(Status{State: StateIdle})
	case t.own != "" && candidate == t.own:
		t.setLocked(Status{State: StateCurrent, Candidate: candidate})
	default:
		t.setLocked(Status{State: StateChecking, Candidate: candidate})
		seq := t.seq
		t.timer = time.AfterFunc(t.window, func() { t.probe(seq, candidate) })
	}
}

// Submit claims the candidate last reported available. The directory
// re-checks everything, so a lost race comes back as a rejected verdict.
func (t *Tracker) Submit(ctx context.Context) (profile.Verdict, error) {
	t.mu.Lock()
	if t.stopped || t.status.State != StateAvailable {
		t.mu.Unlock()
		return profile.Verdict{}, ErrNotSubmittable
	}
	candidate := t.status.Candidate
	seq := t.seq
	t.mu.Unlock()

	verdict, err := t.dir.Claim(ctx, t.accountID, candidate)
	if err != nil {
		return profile.Verdict{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if verdict.OK() {
		t.own = verdict.Username
	}
	if seq != t.seq || t.stopped {
		return verdict, nil
	}
	if verdict.OK() {
		t.setLocked(Status{State: StateCurrent, Candidate: verdict.Username})
	} else {
		t.setLocked(Status{State: StateUnavailable, Candidate: candidate, Message: verdict.Reason.Message()})
	}
	return verdict, nil
}

// Stop abandons pending work. Further input is ignored.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.seq++
	t.abandonLocked()
	t.stop()
}

func (t *Tracker) probe(seq uint64, candidate string) {
	t.mu.Lock()
	if seq != t.seq || t.stopped {
		t.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(t.ctx)
	t.inflight = cancel
	t.mu.Unlock()

	verdict, err := t.dir.CheckAvailability(ctx, t.accountID, candidate)
	cancel()

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq || t.stopped {
		return
	}
	t.inflight = nil

	switch {
	case err != nil:
		t.log.Warn("availability probe failed", slog.String("candidate", candidate), slog.Any("error", err))
		t.setLocked(Status{State: StateIdle, Candidate: candidate, Message: "could not check availability, try again"})
	case verdict.OK():
		t.setLocked(Status{State: StateAvailable, Candidate: candidate})
	default:
		t.setLocked(Status{State: StateUnavailable, Candidate: candidate, Message: verdict.Reason.Message()})
	}
}

func (t *Tracker) abandonLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.inflight != nil {
		t.inflight()
		t.inflight = nil
	}
}

func (t *Tracker) setLocked(s Status) {
	t.status = s
	t.onChange(s)
}
