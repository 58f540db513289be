package transmitter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/opticbeacon/morsed/model"
	"github.com/opticbeacon/morsed/morse"
	"github.com/opticbeacon/morsed/service/report"
)

const unit = 200 * time.Millisecond

// traceEntry is one recorded action: the signal going on or off, or a
// wait of the given duration.
type traceEntry struct {
	action string
	d      time.Duration
}

// harness implements Signal and Clock, recording every action instead
// of touching hardware or sleeping.
type harness struct {
	trace      []traceEntry
	signalOn   bool
	failSignal error
}

func (h *harness) SetSignal(on bool) error {
	if h.failSignal != nil {
		return h.failSignal
	}
	h.signalOn = on
	if on {
		h.trace = append(h.trace, traceEntry{action: "on"})
	} else {
		h.trace = append(h.trace, traceEntry{action: "off"})
	}
	return nil
}

func (h *harness) Sleep(d time.Duration) {
	h.trace = append(h.trace, traceEntry{action: "sleep", d: d})
}

type recordingReporter struct {
	events   []report.Event
	onLetter func()
}

func (r *recordingReporter) Ready() {
	r.events = append(r.events, report.Event{Kind: report.KindReady})
}

func (r *recordingReporter) TransmissionStarted(line string) {
	r.events = append(r.events, report.Event{Kind: report.KindTransmissionStarted, Line: line})
}

func (r *recordingReporter) LetterSent(char rune, code morse.Code) {
	r.events = append(r.events, report.Event{Kind: report.KindLetterSent, Char: char, Code: code})
	if r.onLetter != nil {
		r.onLetter()
	}
}

func (r *recordingReporter) WordBoundary() {
	r.events = append(r.events, report.Event{Kind: report.KindWordBoundary})
}

func (r *recordingReporter) TransmissionDone() {
	r.events = append(r.events, report.Event{Kind: report.KindTransmissionDone})
}

func eventKinds(events []report.Event) []report.EventKind {
	kinds := make([]report.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newTestTransmitter(t *testing.T, u time.Duration, h *harness, rep report.Reporter) Transmitter {
	tx, err := New(Config{Timing: morse.Timing{Unit: u}}, Dependencies{
		Log:      zerolog.Nop(),
		Signal:   h,
		Clock:    h,
		Reporter: rep,
	})
	require.NoError(t, err)
	return tx
}

// pulse is the trace of a single symbol: signal high for the given
// duration, then low for the one unit element gap.
func pulse(high time.Duration) []traceEntry {
	return []traceEntry{
		{action: "on"},
		{action: "sleep", d: high},
		{action: "off"},
		{action: "sleep", d: unit},
	}
}

// letterTrace builds the expected trace of one letter from its
// dot/dash notation, including the trailing letter gap.
func letterTrace(code string) []traceEntry {
	var out []traceEntry
	for _, c := range code {
		if c == '-' {
			out = append(out, pulse(3*unit)...)
		} else {
			out = append(out, pulse(unit)...)
		}
	}
	return append(out, traceEntry{action: "sleep", d: 2 * unit})
}

// lineTrace builds the expected trace of a whole line.
func lineTrace(line string) []traceEntry {
	var out []traceEntry
	for _, c := range line {
		if c == ' ' {
			out = append(out, traceEntry{action: "sleep", d: 6 * unit})
			continue
		}
		code := morse.Lookup(c)
		if code.IsEmpty() {
			continue
		}
		out = append(out, letterTrace(code.String())...)
	}
	return out
}

func TestTransmitSOS(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	rep := &recordingReporter{}
	tx := newTestTransmitter(t, unit, h, rep)
	req.NoError(tx.Transmit(context.Background(), "SOS"))

	var want []traceEntry
	want = append(want, letterTrace("...")...)
	want = append(want, letterTrace("---")...)
	want = append(want, letterTrace("...")...)
	req.Equal(want, h.trace)
	// Nine pulses of four actions each, plus one letter gap per letter.
	req.Len(h.trace, 9*4+3)
	req.False(h.signalOn)

	req.Equal([]report.EventKind{
		report.KindTransmissionStarted,
		report.KindLetterSent, report.KindLetterSent, report.KindLetterSent,
		report.KindTransmissionDone,
	}, eventKinds(rep.events))
	req.Equal("SOS", rep.events[0].Line)
	req.Equal('S', rep.events[1].Char)
	req.Equal("...", rep.events[1].Code.String())
	req.Equal('O', rep.events[2].Char)
	req.Equal("---", rep.events[2].Code.String())
}

func TestTransmitWordGap(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	rep := &recordingReporter{}
	tx := newTestTransmitter(t, unit, h, rep)
	req.NoError(tx.Transmit(context.Background(), "HI THERE"))
	req.Equal(lineTrace("HI THERE"), h.trace)

	// The space is one flat six unit silence with no pulses around it,
	// directly after the trace of HI.
	var gaps []int
	for i, e := range h.trace {
		if e.action == "sleep" && e.d == 6*unit {
			gaps = append(gaps, i)
		}
	}
	req.Len(gaps, 1)
	req.Equal(len(lineTrace("HI")), gaps[0])

	want := []report.EventKind{report.KindTransmissionStarted}
	for range "HI" {
		want = append(want, report.KindLetterSent)
	}
	want = append(want, report.KindWordBoundary)
	for range "THERE" {
		want = append(want, report.KindLetterSent)
	}
	want = append(want, report.KindTransmissionDone)
	req.Equal(want, eventKinds(rep.events))
}

func TestTransmitSkipsUnsupported(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	rep := &recordingReporter{}
	tx := newTestTransmitter(t, unit, h, rep)
	req.NoError(tx.Transmit(context.Background(), "A1!"))

	var want []traceEntry
	want = append(want, letterTrace(".-")...)
	want = append(want, letterTrace(".----")...)
	req.Equal(want, h.trace)

	var onCount int
	for _, e := range h.trace {
		if e.action == "on" {
			onCount++
		}
	}
	req.Equal(7, onCount)

	req.Equal([]report.EventKind{
		report.KindTransmissionStarted,
		report.KindLetterSent, report.KindLetterSent,
		report.KindTransmissionDone,
	}, eventKinds(rep.events))
}

func TestTransmitEmptyLine(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	rep := &recordingReporter{}
	tx := newTestTransmitter(t, unit, h, rep)
	req.NoError(tx.Transmit(context.Background(), ""))
	req.Empty(h.trace)
	req.Empty(rep.events)
}

func TestTransmitSpacesOnly(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	rep := &recordingReporter{}
	tx := newTestTransmitter(t, unit, h, rep)
	req.NoError(tx.Transmit(context.Background(), "   "))
	req.Equal([]traceEntry{
		{action: "sleep", d: 6 * unit},
		{action: "sleep", d: 6 * unit},
		{action: "sleep", d: 6 * unit},
	}, h.trace)
	req.Equal([]report.EventKind{
		report.KindTransmissionStarted,
		report.KindWordBoundary, report.KindWordBoundary, report.KindWordBoundary,
		report.KindTransmissionDone,
	}, eventKinds(rep.events))
}

func TestTransmitNormalizesCase(t *testing.T) {
	req := require.New(t)
	lower, upper := &harness{}, &harness{}
	repLower := &recordingReporter{}
	req.NoError(newTestTransmitter(t, unit, lower, repLower).Transmit(context.Background(), "sos"))
	req.NoError(newTestTransmitter(t, unit, upper, &recordingReporter{}).Transmit(context.Background(), "SOS"))
	req.Equal(upper.trace, lower.trace)
	req.Equal('S', repLower.events[1].Char)
}

func TestTransmitIsRepeatable(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	tx := newTestTransmitter(t, unit, h, &recordingReporter{})
	req.NoError(tx.Transmit(context.Background(), "PARIS"))
	first := append([]traceEntry(nil), h.trace...)
	h.trace = nil
	req.NoError(tx.Transmit(context.Background(), "PARIS"))
	req.Equal(first, h.trace)
}

func TestTransmitScalesWithUnit(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	tx := newTestTransmitter(t, 100*time.Millisecond, h, &recordingReporter{})
	req.NoError(tx.Transmit(context.Background(), "E"))
	req.Equal([]traceEntry{
		{action: "on"},
		{action: "sleep", d: 100 * time.Millisecond},
		{action: "off"},
		{action: "sleep", d: 100 * time.Millisecond},
		{action: "sleep", d: 200 * time.Millisecond},
	}, h.trace)
}

func TestTransmitCancellation(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rep := &recordingReporter{}
	letters := 0
	rep.onLetter = func() {
		letters++
		if letters == 2 {
			cancel()
		}
	}
	tx := newTestTransmitter(t, unit, h, rep)
	err := tx.Transmit(ctx, "SOS")
	req.Error(err)
	req.ErrorIs(err, context.Canceled)

	// The letter on the air when cancel arrived still completes, then
	// the signal is forced low and nothing else goes out.
	var want []traceEntry
	want = append(want, letterTrace("...")...)
	want = append(want, letterTrace("---")...)
	want = append(want, traceEntry{action: "off"})
	req.Equal(want, h.trace)
	req.False(h.signalOn)
	req.NotContains(eventKinds(rep.events), report.KindTransmissionDone)
}

func TestTransmitPropagatesSignalErrors(t *testing.T) {
	req := require.New(t)
	h := &harness{failSignal: errors.New("wire cut")}
	tx := newTestTransmitter(t, unit, h, &recordingReporter{})
	err := tx.Transmit(context.Background(), "E")
	req.Error(err)
	req.Contains(err.Error(), "wire cut")
}

func TestNewRejectsInvalidTiming(t *testing.T) {
	req := require.New(t)
	_, err := New(Config{}, Dependencies{
		Log:      zerolog.Nop(),
		Signal:   &harness{},
		Clock:    &harness{},
		Reporter: &recordingReporter{},
	})
	req.Error(err)
	req.True(errors.Is(err, model.ValidationError))
}

// decodeTrace reconstructs the dot/dash structure from a pulse trace
// by classifying durations against thresholds halfway between the
// nominal values, the way optical receivers do.
func decodeTrace(trace []traceEntry, u time.Duration) string {
	var (
		words   []string
		letters []string
		symbols strings.Builder
	)
	flushLetter := func() {
		if symbols.Len() > 0 {
			letters = append(letters, symbols.String())
			symbols.Reset()
		}
	}
	flushWord := func() {
		flushLetter()
		if len(letters) > 0 {
			words = append(words, strings.Join(letters, " "))
			letters = nil
		}
	}
	on := false
	var gap time.Duration
	for _, e := range trace {
		switch e.action {
		case "on":
			if gap >= 5*u {
				flushWord()
			} else if gap >= 2*u {
				flushLetter()
			}
			gap = 0
			on = true
		case "off":
			on = false
		case "sleep":
			if on {
				if e.d >= 2*u {
					symbols.WriteByte('-')
				} else {
					symbols.WriteByte('.')
				}
			} else {
				gap += e.d
			}
		}
	}
	flushWord()
	return strings.Join(words, " / ")
}

func TestTraceDecodesBackToMessage(t *testing.T) {
	req := require.New(t)
	h := &harness{}
	tx := newTestTransmitter(t, unit, h, &recordingReporter{})
	req.NoError(tx.Transmit(context.Background(), "SOS PIT"))
	req.Equal("... --- ... / .--. .. -", decodeTrace(h.trace, unit))
}
