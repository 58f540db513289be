package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/opticbeacon/morsed/service"
	"github.com/opticbeacon/morsed/service/report"
)

type fakeAPI struct {
	mutex     sync.Mutex
	submitted []string
	origins   []string
	submitErr error
	status    service.Status
	canceled  bool
}

func (f *fakeAPI) Submit(ctx context.Context, text, origin string) (service.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.submitErr != nil {
		return service.Message{}, f.submitErr
	}
	f.submitted = append(f.submitted, text)
	f.origins = append(f.origins, origin)
	return service.Message{ID: "test-id", Text: text, Origin: origin}, nil
}

func (f *fakeAPI) Status() service.Status {
	return f.status
}

func (f *fakeAPI) Subscribe(cb func(report.Event)) context.CancelFunc {
	return func() {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		f.canceled = true
	}
}

func newTestRoot(api *fakeAPI) Root {
	return newRoot(api, 80, 24)
}

func TestRootShowsEvents(t *testing.T) {
	req := require.New(t)
	r := newTestRoot(&fakeAPI{})

	m, cmd := r.Update(eventMsg(report.Event{Kind: report.KindTransmissionStarted, Line: "SOS"}))
	req.NotNil(cmd)
	r = m.(Root)
	req.Contains(r.View(), `transmitting "SOS"`)

	m, _ = r.Update(eventMsg(report.Event{Kind: report.KindTransmissionDone}))
	r = m.(Root)
	req.Contains(r.View(), "transmission complete")
}

func TestRootSubmitsOnEnter(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	r := newTestRoot(api)
	r.input.SetValue("  sos  ")

	m, cmd := r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req.NotNil(cmd)
	r = m.(Root)
	req.Equal("", r.input.Value())

	msg := r.doSubmit("sos")()
	req.Nil(msg)
	req.Equal([]string{"sos"}, api.submitted)
	req.Equal([]string{"ssh"}, api.origins)
}

func TestRootShowsSubmitErrors(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{submitErr: service.ErrQueueFull}
	r := newTestRoot(api)

	msg := r.doSubmit("sos")()
	req.IsType(submitErrorMsg{}, msg)
	m, _ := r.Update(msg)
	r = m.(Root)
	req.Contains(r.View(), "error: transmission queue is full")
}

func TestRootQuit(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	r := newTestRoot(api)

	m, cmd := r.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())
	req.True(api.canceled)

	// A second quit must not panic on the closed done channel.
	r = m.(Root)
	_, cmd = r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	req.NotNil(cmd)
}

func TestRootSessionCloseReleasesSubscription(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	r := newTestRoot(api)

	waitDone := make(chan tea.Msg, 1)
	go func() {
		waitDone <- r.doWaitForEvent()()
	}()

	// The session dropping cancels its context without any key press.
	ctx, cancel := context.WithCancel(context.Background())
	go watchSession(ctx, r.cleanup)
	cancel()

	req.Eventually(func() bool {
		api.mutex.Lock()
		defer api.mutex.Unlock()
		return api.canceled
	}, time.Second, 10*time.Millisecond)
	select {
	case msg := <-waitDone:
		req.Nil(msg)
	case <-time.After(time.Second):
		t.Fatal("event wait still blocked after the session closed")
	}

	// A key driven quit after the session already closed must not panic.
	_, cmd := r.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	req.NotNil(cmd)
	req.IsType(tea.QuitMsg{}, cmd())
}

func TestRootResize(t *testing.T) {
	req := require.New(t)
	r := newTestRoot(&fakeAPI{})

	m, _ := r.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	r = m.(Root)
	req.Equal(100, r.width)
	req.Equal(30, r.height)
	req.Equal(28, r.log.Height)
	req.Equal(100, r.log.Width)
}
