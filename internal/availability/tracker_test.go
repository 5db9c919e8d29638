package availability

import (
	"bytes"
	"context"
	"errors"
	"linkbio/internal/profile"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testWindow = 20 * time.Millisecond

type fakeDirectory struct {
	mu      sync.Mutex
	taken   map[string]bool
	probes  []string
	claims  []string
	block   map[string]chan struct{}
	failing bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{taken: map[string]bool{}, block: map[string]chan struct{}{}}
}

func (f *fakeDirectory) CheckAvailability(ctx context.Context, _ string, candidate string) (profile.Verdict, error) {
	f.mu.Lock()
	f.probes = append(f.probes, candidate)
	gate := f.block[candidate]
	failing := f.failing
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if failing {
		return profile.Verdict{}, errors.New("store unavailable")
	}
	if reason := profile.ValidateUsername(candidate); reason != profile.ReasonNone {
		return profile.Verdict{Username: candidate, Reason: reason}, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken[candidate] {
		return profile.Verdict{Username: candidate, Reason: profile.ReasonTaken}, nil
	}
	return profile.Verdict{Username: candidate}, nil
}

func (f *fakeDirectory) Claim(_ context.Context, _ string, desired string) (profile.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims = append(f.claims, desired)
	if f.taken[desired] {
		return profile.Verdict{Username: desired, Reason: profile.ReasonTaken}, nil
	}
	f.taken[desired] = true
	return profile.Verdict{Username: desired}, nil
}

func (f *fakeDirectory) probeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.probes)
}

func waitForState(t *testing.T, tr *Tracker, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return tr.Status().State == want
	}, time.Second, 5*time.Millisecond, "expected state %s, have %s", want, tr.Status().State)
}

func TestTracker_DebounceProbesLatestOnly(t *testing.T) {
	dir := newFakeDirectory()
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("a")
	tr.Input("al")
	tr.Input("ali")
	tr.Input("alic")
	require.Equal(t, StateChecking, tr.Status().State)

	waitForState(t, tr, StateAvailable)
	require.Equal(t, "alic", tr.Status().Candidate)
	require.Equal(t, 1, dir.probeCount())
}

func TestTracker_EmptyIsIdle(t *testing.T) {
	dir := newFakeDirectory()
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("alice")
	tr.Input("")
	require.Equal(t, StateIdle, tr.Status().State)

	time.Sleep(3 * testWindow)
	require.Equal(t, StateIdle, tr.Status().State)
	require.Zero(t, dir.probeCount())
}

func TestTracker_OwnNameIsCurrent(t *testing.T) {
	dir := newFakeDirectory()
	dir.taken["mine"] = true
	tr := NewTracker(dir, "acc_1", "mine", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("mine")
	require.Equal(t, StateCurrent, tr.Status().State)

	time.Sleep(3 * testWindow)
	require.Equal(t, StateCurrent, tr.Status().State, "own name is never reported unavailable")
	require.Zero(t, dir.probeCount())
}

func TestTracker_UnavailableCarriesReason(t *testing.T) {
	dir := newFakeDirectory()
	dir.taken["alice"] = true
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("alice")
	waitForState(t, tr, StateUnavailable)
	require.Equal(t, "username is already taken", tr.Status().Message)

	tr.Input("ab")
	waitForState(t, tr, StateUnavailable)
	require.Equal(t, profile.ReasonTooShort.Message(), tr.Status().Message)
}

func TestTracker_StaleResultIsDropped(t *testing.T) {
	dir := newFakeDirectory()
	gate := make(chan struct{})
	dir.block["slowname"] = gate
	dir.taken["slowname"] = true
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("slowname")
	require.Eventually(t, func() bool { return dir.probeCount() == 1 }, time.Second, 5*time.Millisecond)

	tr.Input("fastname")
	waitForState(t, tr, StateAvailable)

	close(gate)
	time.Sleep(3 * testWindow)
	require.Equal(t, StateAvailable, tr.Status().State)
	require.Equal(t, "fastname", tr.Status().Candidate)
}

func TestTracker_ProbeErrorResetsToIdle(t *testing.T) {
	dir := newFakeDirectory()
	dir.failing = true
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("alice")
	require.Eventually(t, func() bool {
		s := tr.Status()
		return s.State == StateIdle && s.Message != ""
	}, time.Second, 5*time.Millisecond)
}

func TestTracker_SubmitOnlyWhenAvailable(t *testing.T) {
	dir := newFakeDirectory()
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	_, err := tr.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotSubmittable)

	tr.Input("alice")
	_, err = tr.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotSubmittable, "checking is not submittable")

	waitForState(t, tr, StateAvailable)
	v, err := tr.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, v.OK())
	require.Equal(t, StateCurrent, tr.Status().State)
	require.Equal(t, "alice", tr.Own())

	_, err = tr.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotSubmittable)
	require.Equal(t, []string{"alice"}, dir.claims)
}

func TestTracker_SubmitLosesRace(t *testing.T) {
	dir := newFakeDirectory()
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)
	defer tr.Stop()

	tr.Input("alice")
	waitForState(t, tr, StateAvailable)

	dir.mu.Lock()
	dir.taken["alice"] = true
	dir.mu.Unlock()

	v, err := tr.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, profile.ReasonTaken, v.Reason)
	require.Equal(t, StateUnavailable, tr.Status().State)
	require.Empty(t, tr.Own())
}

func TestTracker_OnChangeSequence(t *testing.T) {
	dir := newFakeDirectory()
	var (
		mu     sync.Mutex
		states []State
	)
	tr := NewTracker(dir, "acc_1", "", testWindow, func(s Status) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	}, nil)
	defer tr.Stop()

	tr.Input("alice")
	waitForState(t, tr, StateAvailable)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []State{StateChecking, StateAvailable}, states)
}

func TestTracker_StopIgnoresInput(t *testing.T) {
	dir := newFakeDirectory()
	tr := NewTracker(dir, "acc_1", "", testWindow, nil, nil)

	tr.Input("alice")
	tr.Stop()
	time.Sleep(3 * testWindow)
	require.Equal(t, StateChecking, tr.Status().State)
	require.Zero(t, dir.probeCount())

	tr.Input("bob")
	require.Equal(t, "alice", tr.Status().Candidate)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTracker_LogsThroughGivenLogger(t *testing.T) {
	dir := newFakeDirectory()
	dir.failing = true
	var out syncBuffer
	log := slog.New(slog.NewTextHandler(&out, nil))

	tr := NewTracker(dir, "acc_1", "", testWindow, nil, log)
	defer tr.Stop()

	tr.Input("validname")
	require.Eventually(t, func() bool { return tr.Status().Message != "" }, time.Second, 5*time.Millisecond)

	require.Contains(t, out.String(), "availability probe failed")
	require.Contains(t, out.String(), "account_id=acc_1")
}
