// internals/features/notifications/service/dispatch.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"
)

/*
The dispatch orchestrator walks an operator through sending one composed batch:
pick a strategy, then either open deep-links one by one, open them all with
pacing, or hand back copy-paste instructions. One batch per session, drive it
from a single goroutine.
*/

type DispatchState string

const (
	StateIdle             DispatchState = "idle"
	StateComposingBatch   DispatchState = "composing_batch"
	StateStrategySelected DispatchState = "strategy_selected"
	StateDispatching      DispatchState = "dispatching"
	StateDone             DispatchState = "done"
	StateCancelled        DispatchState = "cancelled"
	StatePartialFailure   DispatchState = "partial_failure"
)

type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyBroadcast  Strategy = "broadcast"
	StrategyManual     Strategy = "manual"
)

// ParseStrategy accepts the operator's menu choice ("1"/"2"/"3") as well as
// the strategy name itself.
func ParseStrategy(choice string) (Strategy, error) {
	switch choice {
	case "1", string(StrategySequential):
		return StrategySequential, nil
	case "2", string(StrategyBroadcast):
		return StrategyBroadcast, nil
	case "3", string(StrategyManual):
		return StrategyManual, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, choice)
}

var (
	ErrUnknownStrategy = errors.New("unknown dispatch strategy")
	ErrNoBatch         = errors.New("no batch composed")
	ErrEmptyBatch      = errors.New("batch has no sendable recipients")
	ErrWrongState      = errors.New("operation not allowed in current dispatch state")
	ErrWrongStrategy   = errors.New("operation does not match the selected strategy")
	ErrQueueDrained    = errors.New("all intents already dispatched")
)

// LinkOpener hands a deep-link to whatever can actually open it. The
// orchestrator never talks to the transport itself.
type LinkOpener interface {
	Open(url string) error
}

// Clipboard receives operator-facing text for strategies that end in a manual
// paste.
type Clipboard interface {
	Copy(text string) error
}

type Orchestrator struct {
	opener    LinkOpener
	clipboard Clipboard

	// pacing between automated opens; sleep is swappable for tests
	pace  time.Duration
	sleep func(time.Duration)

	state    DispatchState
	strategy Strategy
	batch    *BulkBatch
	cursor   int
	failures int
}

func NewOrchestrator(opener LinkOpener, clipboard Clipboard) *Orchestrator {
	return &Orchestrator{
		opener:    opener,
		clipboard: clipboard,
		pace:      time.Second,
		sleep:     time.Sleep,
		state:     StateIdle,
	}
}

func (o *Orchestrator) State() DispatchState { return o.state }
func (o *Orchestrator) Strategy() Strategy   { return o.strategy }
func (o *Orchestrator) Batch() *BulkBatch    { return o.batch }

// Begin loads a freshly composed batch. Allowed from idle or any terminal
// state; a session mid-dispatch must be cancelled first.
func (o *Orchestrator) Begin(batch *BulkBatch) error {
	switch o.state {
	case StateIdle, StateDone, StateCancelled, StatePartialFailure:
	default:
		return ErrWrongState
	}
	if batch == nil {
		return ErrNoBatch
	}
	o.batch = batch
	o.strategy = ""
	o.cursor = 0
	o.failures = 0
	o.state = StateComposingBatch
	return nil
}

// SelectStrategy moves the session forward. An unrecognized choice resets to
// idle instead of leaving the session stuck half-selected.
func (o *Orchestrator) SelectStrategy(choice string) (Strategy, error) {
	if o.state != StateComposingBatch {
		return "", ErrWrongState
	}
	s, err := ParseStrategy(choice)
	if err != nil {
		o.reset()
		return "", err
	}
	if len(o.batch.Intents) == 0 {
		o.reset()
		return "", ErrEmptyBatch
	}
	o.strategy = s
	o.state = StateStrategySelected
	return s, nil
}

// Cancel abandons the session before any dispatch happened.
func (o *Orchestrator) Cancel() error {
	switch o.state {
	case StateComposingBatch, StateStrategySelected:
		o.state = StateCancelled
		return nil
	}
	return ErrWrongState
}

// Remaining returns the intents not yet dispatched, in queue order.
func (o *Orchestrator) Remaining() []MessageIntent {
	if o.batch == nil || o.cursor >= len(o.batch.Intents) {
		return nil
	}
	return o.batch.Intents[o.cursor:]
}

// OpenNext dispatches exactly one intent under the sequential strategy. A
// failed open is reported but never retried, and never blocks the rest of the
// queue. The returned intent is the one attempted, even on failure.
func (o *Orchestrator) OpenNext() (MessageIntent, error) {
	if err := o.requireDispatchable(StrategySequential); err != nil {
		return MessageIntent{}, err
	}
	if o.cursor >= len(o.batch.Intents) {
		return MessageIntent{}, ErrQueueDrained
	}
	o.state = StateDispatching

	intent := o.batch.Intents[o.cursor]
	o.cursor++
	var openErr error
	if err := o.opener.Open(intent.WhatsAppURL); err != nil {
		o.failures++
		log.Printf("[Dispatch] open failed for %s: %v", intent.Phone, err)
		openErr = fmt.Errorf("open %s: %w", intent.Phone, err)
	}
	if o.cursor >= len(o.batch.Intents) {
		o.finish()
	}
	return intent, openErr
}

type OpenResult struct {
	Intent MessageIntent
	Err    error
}

// OpenAll dispatches every remaining sequential intent with a pause between
// opens so the channel app can keep up. Failures are collected, not fatal.
func (o *Orchestrator) OpenAll() ([]OpenResult, error) {
	if err := o.requireDispatchable(StrategySequential); err != nil {
		return nil, err
	}
	o.state = StateDispatching

	var results []OpenResult
	for o.cursor < len(o.batch.Intents) {
		if len(results) > 0 {
			o.sleep(o.pace)
		}
		intent := o.batch.Intents[o.cursor]
		o.cursor++
		res := OpenResult{Intent: intent}
		if err := o.opener.Open(intent.WhatsAppURL); err != nil {
			o.failures++
			log.Printf("[Dispatch] open failed for %s: %v", intent.Phone, err)
			res.Err = fmt.Errorf("open %s: %w", intent.Phone, err)
		}
		results = append(results, res)
	}
	o.finish()
	return results, nil
}

// BroadcastInstructions finishes a broadcast session: the phone list goes to
// the clipboard and the operator pastes it into the channel's broadcast-list
// screen.
func (o *Orchestrator) BroadcastInstructions() (BroadcastInstructions, error) {
	if err := o.requireDispatchable(StrategyBroadcast); err != nil {
		return BroadcastInstructions{}, err
	}
	o.state = StateDispatching
	instr := o.batch.Broadcast()
	if o.clipboard != nil {
		if err := o.clipboard.Copy(instr.PhoneList); err != nil {
			// clipboard is a convenience; the list is still in the response
			log.Printf("[Dispatch] clipboard copy failed: %v", err)
		}
	}
	o.finish()
	return instr, nil
}

// ManualList finishes a manual session with the copyable student listing.
func (o *Orchestrator) ManualList() (ManualCopyList, error) {
	if err := o.requireDispatchable(StrategyManual); err != nil {
		return ManualCopyList{}, err
	}
	o.state = StateDispatching
	list := o.batch.Manual()
	if o.clipboard != nil {
		if err := o.clipboard.Copy(list.StudentList); err != nil {
			log.Printf("[Dispatch] clipboard copy failed: %v", err)
		}
	}
	o.finish()
	return list, nil
}

func (o *Orchestrator) requireDispatchable(want Strategy) error {
	if o.state != StateStrategySelected && o.state != StateDispatching {
		return ErrWrongState
	}
	if o.strategy != want {
		return ErrWrongStrategy
	}
	return nil
}

// finish picks the terminal state: a batch that skipped recipients or failed
// opens ends in partial_failure so the operator knows to follow up.
func (o *Orchestrator) finish() {
	if o.failures > 0 || len(o.batch.Skipped) > 0 {
		o.state = StatePartialFailure
		return
	}
	o.state = StateDone
}

func (o *Orchestrator) reset() {
	o.state = StateIdle
	o.strategy = ""
	o.batch = nil
	o.cursor = 0
	o.failures = 0
}
