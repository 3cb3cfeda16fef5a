package service

import (
	"errors"
	"testing"
	"time"
)

type fakeOpener struct {
	opened []string
	failOn map[string]bool
}

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	if f.failOn[url] {
		return errors.New("window blocked")
	}
	return nil
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

func testBatch(phones ...string) *BulkBatch {
	var rs []Recipient
	for i, p := range phones {
		rs = append(rs, Recipient{Name: string(rune('A' + i)), Phone: p})
	}
	return ComposeBulk(rs, "renewal due", nil)
}

func newTestOrchestrator() (*Orchestrator, *fakeOpener, *fakeClipboard) {
	op := &fakeOpener{failOn: map[string]bool{}}
	cb := &fakeClipboard{}
	o := NewOrchestrator(op, cb)
	o.sleep = func(time.Duration) {}
	return o, op, cb
}

func TestSequentialOpenNext(t *testing.T) {
	o, op, _ := newTestOrchestrator()
	batch := testBatch("+919876543210", "+919000000000")
	if err := o.Begin(batch); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := o.SelectStrategy("1"); err != nil {
		t.Fatalf("SelectStrategy: %v", err)
	}

	first, err := o.OpenNext()
	if err != nil {
		t.Fatalf("OpenNext: %v", err)
	}
	if first.Phone != "+919876543210" {
		t.Fatalf("queue order broken, got %s", first.Phone)
	}
	if o.State() != StateDispatching {
		t.Fatalf("state = %s, want %s", o.State(), StateDispatching)
	}
	if len(o.Remaining()) != 1 {
		t.Fatalf("Remaining = %d, want 1", len(o.Remaining()))
	}

	if _, err := o.OpenNext(); err != nil {
		t.Fatalf("OpenNext: %v", err)
	}
	if o.State() != StateDone {
		t.Fatalf("state after drain = %s, want %s", o.State(), StateDone)
	}
	if _, err := o.OpenNext(); !errors.Is(err, ErrWrongState) && !errors.Is(err, ErrQueueDrained) {
		t.Fatalf("drained queue must refuse further opens, got %v", err)
	}
	if len(op.opened) != 2 {
		t.Fatalf("opened %d links, want 2", len(op.opened))
	}
}

func TestSequentialFailedOpenDoesNotBlockQueue(t *testing.T) {
	o, op, _ := newTestOrchestrator()
	batch := testBatch("+919876543210", "+919000000000")
	op.failOn[batch.Intents[0].WhatsAppURL] = true

	o.Begin(batch)
	o.SelectStrategy("1")

	if _, err := o.OpenNext(); err == nil {
		t.Fatalf("expected open failure to surface")
	}
	second, err := o.OpenNext()
	if err != nil {
		t.Fatalf("second open must still run: %v", err)
	}
	if second.Phone != "+919000000000" {
		t.Fatalf("queue advanced wrong, got %s", second.Phone)
	}
	if o.State() != StatePartialFailure {
		t.Fatalf("state = %s, want %s", o.State(), StatePartialFailure)
	}
}

func TestOpenAllPacing(t *testing.T) {
	op := &fakeOpener{failOn: map[string]bool{}}
	o := NewOrchestrator(op, &fakeClipboard{})
	var pauses []time.Duration
	o.sleep = func(d time.Duration) { pauses = append(pauses, d) }

	o.Begin(testBatch("+919876543210", "+919000000000", "+919111111111"))
	o.SelectStrategy("sequential")

	results, err := o.OpenAll()
	if err != nil {
		t.Fatalf("OpenAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// n opens need n-1 pauses between them
	if len(pauses) != 2 {
		t.Fatalf("pauses = %d, want 2", len(pauses))
	}
	for _, d := range pauses {
		if d != time.Second {
			t.Fatalf("pause = %v, want 1s", d)
		}
	}
	if o.State() != StateDone {
		t.Fatalf("state = %s, want %s", o.State(), StateDone)
	}
}

func TestBroadcastCopiesPhoneList(t *testing.T) {
	o, _, cb := newTestOrchestrator()
	o.Begin(testBatch("+919876543210", "+919000000000"))
	o.SelectStrategy("2")

	instr, err := o.BroadcastInstructions()
	if err != nil {
		t.Fatalf("BroadcastInstructions: %v", err)
	}
	if instr.PhoneList != "+919876543210\n+919000000000" {
		t.Fatalf("PhoneList = %q", instr.PhoneList)
	}
	if len(cb.copied) != 1 || cb.copied[0] != instr.PhoneList {
		t.Fatalf("phone list not copied to clipboard: %v", cb.copied)
	}
	if o.State() != StateDone {
		t.Fatalf("state = %s, want %s", o.State(), StateDone)
	}
}

func TestClipboardFailureIsNotFatal(t *testing.T) {
	o, _, cb := newTestOrchestrator()
	cb.err = errors.New("no clipboard")
	o.Begin(testBatch("+919876543210"))
	o.SelectStrategy("2")

	if _, err := o.BroadcastInstructions(); err != nil {
		t.Fatalf("clipboard failure must not fail dispatch: %v", err)
	}
	if o.State() != StateDone {
		t.Fatalf("state = %s, want %s", o.State(), StateDone)
	}
}

func TestManualStrategy(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	o.Begin(testBatch("+919876543210"))
	o.SelectStrategy("3")

	list, err := o.ManualList()
	if err != nil {
		t.Fatalf("ManualList: %v", err)
	}
	if list.StudentList == "" || list.Message != "renewal due" {
		t.Fatalf("manual list incomplete: %+v", list)
	}
}

func TestStrategyMismatchRejected(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	o.Begin(testBatch("+919876543210"))
	o.SelectStrategy("2")

	if _, err := o.OpenNext(); !errors.Is(err, ErrWrongStrategy) {
		t.Fatalf("OpenNext under broadcast = %v, want ErrWrongStrategy", err)
	}
}

func TestUnknownStrategyResetsToIdle(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	o.Begin(testBatch("+919876543210"))

	if _, err := o.SelectStrategy("7"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("err = %v, want ErrUnknownStrategy", err)
	}
	if o.State() != StateIdle {
		t.Fatalf("state = %s, want %s", o.State(), StateIdle)
	}
}

func TestCancelBeforeDispatch(t *testing.T) {
	o, op, _ := newTestOrchestrator()
	o.Begin(testBatch("+919876543210"))
	o.SelectStrategy("1")

	if err := o.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if o.State() != StateCancelled {
		t.Fatalf("state = %s, want %s", o.State(), StateCancelled)
	}
	if len(op.opened) != 0 {
		t.Fatalf("cancelled session must not open anything")
	}
	if _, err := o.OpenNext(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("cancelled session accepted OpenNext: %v", err)
	}
}

func TestSkippedRecipientsEndInPartialFailure(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	o.Begin(ComposeBulk([]Recipient{
		{Name: "A", Phone: "+919876543210"},
		{Name: "B", Phone: "bad"},
	}, "note", nil))
	o.SelectStrategy("1")

	if _, err := o.OpenAll(); err != nil {
		t.Fatalf("OpenAll: %v", err)
	}
	if o.State() != StatePartialFailure {
		t.Fatalf("state = %s, want %s", o.State(), StatePartialFailure)
	}
}

func TestBeginRejectedMidDispatch(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	o.Begin(testBatch("+919876543210", "+919000000000"))
	o.SelectStrategy("1")
	o.OpenNext()

	if err := o.Begin(testBatch("+919111111111")); !errors.Is(err, ErrWrongState) {
		t.Fatalf("Begin mid-dispatch = %v, want ErrWrongState", err)
	}
}
