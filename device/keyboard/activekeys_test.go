package keyboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ksTesting "github.com/retrofold/keyscan/internal/testing"
	"github.com/retrofold/keyscan/hid"
)

// clockStub provides a controllable press-timestamp source.
type clockStub struct{ t time.Time }

func (c *clockStub) now() time.Time          { return c.t }
func (c *clockStub) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestKeyboard(t *testing.T, o Options) (*Keyboard, *clockStub) {
	t.Helper()
	if o.Model == "" {
		o.Model = "tk85"
	}
	kb, err := New(o)
	require.NoError(t, err)
	cs := &clockStub{t: time.Unix(1000, 0)}
	kb.now = cs.now
	return kb, cs
}

func TestShortPressIsStretched(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())

	// Released well inside the minimum press time: the entry must stay
	// observable and an auto-release must be scheduled instead.
	cs.advance(10 * time.Millisecond)
	kb.DeliverKeyTransition(hid.KeyA, false, false)
	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())
	assert.Equal(t, 1, sched.Outstanding())
	assert.Equal(t, kb.model.MinPress-10*time.Millisecond, sched.NextDelay())

	// Once the minimum press time has elapsed the timer removes it with no
	// further input.
	cs.advance(kb.model.MinPress)
	sched.Fire()
	assert.Empty(t, kb.ActiveCodes())
	assert.Equal(t, 0, sched.Outstanding())
}

func TestLongPressRemovedImmediately(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	cs.advance(kb.model.MinPress + time.Millisecond)
	kb.DeliverKeyTransition(hid.KeyA, false, false)

	assert.Empty(t, kb.ActiveCodes())
	assert.Equal(t, 0, sched.Outstanding())
}

func TestRepeatedDownDoesNotDuplicate(t *testing.T) {
	kb, cs := newTestKeyboard(t, Options{})

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	cs.advance(5 * time.Millisecond)
	// Key repeat delivers more downs; the entry is refreshed in place.
	kb.DeliverKeyTransition(hid.KeyA, true, false)
	kb.DeliverKeyTransition(hid.KeyA, true, false)

	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())
}

func TestRepeatedDownRefreshesTimestamp(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	cs.advance(kb.model.MinPress)
	kb.DeliverKeyTransition(hid.KeyA, true, false)

	// The refreshed timestamp restarts the debounce window.
	cs.advance(time.Millisecond)
	kb.DeliverKeyTransition(hid.KeyA, false, false)
	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())
	assert.Equal(t, 1, sched.Outstanding())
}

func TestSpuriousUpIgnored(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})

	kb.DeliverKeyTransition(hid.KeyA, false, false)
	assert.Empty(t, kb.ActiveCodes())
}

func TestSyntheticPressAutoReleases(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	kb.DeliverSyntheticPress(hid.KeyA)
	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())
	assert.Equal(t, 1, sched.Outstanding())
	assert.Equal(t, kb.model.MinPress, sched.NextDelay())

	cs.advance(kb.model.MinPress)
	sched.Fire()
	assert.Empty(t, kb.ActiveCodes())
}

func TestSingleTimerBatching(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	// Two entries pending auto-release at different deadlines share one
	// outstanding callback, armed at the smaller delay.
	kb.DeliverSyntheticPress(hid.KeyA)
	cs.advance(30 * time.Millisecond)
	kb.DeliverSyntheticPress(hid.KeyB)

	assert.Equal(t, 1, sched.Outstanding())
	assert.Equal(t, kb.model.MinPress-30*time.Millisecond, sched.NextDelay())

	// After the first deadline fires, exactly one new callback covers the
	// remaining entry.
	cs.advance(kb.model.MinPress - 30*time.Millisecond)
	sched.Fire()
	assert.Equal(t, []SoftCode{CodeB}, kb.ActiveCodes())
	assert.Equal(t, 1, sched.Outstanding())
	assert.Equal(t, 30*time.Millisecond, sched.NextDelay())

	cs.advance(30 * time.Millisecond)
	sched.Fire()
	assert.Empty(t, kb.ActiveCodes())
	assert.Equal(t, 0, sched.Outstanding())
}

func TestEarlyTimerFireIsHarmless(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Scheduler: sched})

	kb.DeliverSyntheticPress(hid.KeyA)
	// Fire before the deadline: elapsed time is re-checked, the entry
	// survives, and the timer is re-armed.
	cs.advance(20 * time.Millisecond)
	sched.Fire()
	assert.Equal(t, []SoftCode{CodeA}, kb.ActiveCodes())
	assert.Equal(t, 1, sched.Outstanding())
	assert.Equal(t, kb.model.MinPress-20*time.Millisecond, sched.NextDelay())
}

func TestInsertionOrderPreserved(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})

	kb.DeliverKeyTransition(hid.KeyC, true, false)
	kb.DeliverKeyTransition(hid.KeyA, true, false)
	kb.DeliverKeyTransition(hid.KeyB, true, false)

	assert.Equal(t, []SoftCode{CodeC, CodeA, CodeB}, kb.ActiveCodes())
}
