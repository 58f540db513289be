// Copyright 2025 The morsed authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/dustin/go-humanize"

	"github.com/opticbeacon/morsed/service"
	"github.com/opticbeacon/morsed/service/report"
)

// Number of event lines kept per session.
const maxLogLines = 500

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// API contains the part of the daemon API used by the terminal UI.
type API interface {
	Submit(ctx context.Context, text, origin string) (service.Message, error)
	Status() service.Status
	Subscribe(cb func(report.Event)) context.CancelFunc
}

// Handler builds a terminal UI for every incoming SSH session.
type Handler struct {
	api API
}

// NewHandler creates a Handler on top of the given API.
func NewHandler(api API) *Handler {
	return &Handler{api: api}
}

// Handler builds a Bubble Tea model for the incoming ssh.Session.
func (h *Handler) Handler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := s.Pty()
	r := newRoot(h.api, pty.Window.Width, pty.Window.Height)
	// Sessions can also end without a key press (connection drop);
	// release the subscription when the session context closes.
	go watchSession(s.Context(), r.cleanup)
	return r, []tea.ProgramOption{tea.WithAltScreen()}
}

// newRoot creates the model for one terminal session, subscribed to
// the live event feed. The model's cleanup releases the subscription
// exactly once, no matter which path ends the session.
func newRoot(api API, width, height int) Root {
	events := make(chan report.Event, 64)
	cancel := api.Subscribe(func(e report.Event) {
		select {
		case events <- e:
		default:
			// Drop events for slow sessions
		}
	})
	done := make(chan struct{})
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}

	input := textinput.New()
	input.Placeholder = "Type your message and press enter"
	input.CharLimit = 256
	input.Focus()

	r := Root{
		api:     api,
		events:  events,
		done:    done,
		cleanup: cleanup,
		input:   input,
		width:   width,
		height:  height,
		status:  api.Status(),
	}
	r.log = viewport.New(r.width, r.logHeight())
	return r
}

// watchSession runs cleanup once the session context closes. A session
// that drops never delivers a quit key to Update.
func watchSession(ctx context.Context, cleanup func()) {
	<-ctx.Done()
	cleanup()
}

// Root is the top level model of a terminal UI session.
type Root struct {
	api     API
	events  chan report.Event
	done    chan struct{}
	cleanup func()

	width  int
	height int

	input  textinput.Model
	log    viewport.Model
	lines  []string
	status service.Status
}

var _ tea.Model = Root{}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (r Root) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, r.doWaitForEvent(), r.doReloadStatus())
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (r Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case eventMsg:
		r = r.appendLine(report.Event(msg).String())
		cmds = append(cmds, r.doWaitForEvent())
	case statusMsg:
		r.status = service.Status(msg)
		cmds = append(cmds, r.doReloadStatus())
	case submitErrorMsg:
		r = r.appendLine(errorStyle.Render("error: " + msg.err.Error()))
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.log.Width = msg.Width
		r.log.Height = r.logHeight()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return r.quit()
		case "enter":
			if text := strings.TrimSpace(r.input.Value()); text != "" {
				cmds = append(cmds, r.doSubmit(text))
			}
			r.input.SetValue("")
		}
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	cmds = append(cmds, cmd)
	r.log, cmd = r.log.Update(msg)
	cmds = append(cmds, cmd)

	return r, tea.Batch(cmds...)
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (r Root) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.headerView(),
		r.log.View(),
		r.input.View(),
	)
}

func (r Root) headerView() string {
	state := r.status.State
	if r.status.Current != nil {
		state = fmt.Sprintf("%s %q", state, r.status.Current.Text)
	}
	uptime := strings.TrimSpace(humanize.RelTime(time.Now().Add(-time.Duration(r.status.Uptime)*time.Second), time.Now(), "", ""))
	return lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("morsed "+r.status.Version),
		statusStyle.Render(fmt.Sprintf("  %s | queue %d | unit %s | up %s",
			state, r.status.QueueLength, r.status.Unit, uptime)),
	)
}

// logHeight is the number of rows left for the event log.
func (r Root) logHeight() int {
	h := r.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// appendLine adds a line to the event log and scrolls to the bottom.
func (r Root) appendLine(line string) Root {
	r.lines = append(r.lines, line)
	if len(r.lines) > maxLogLines {
		r.lines = r.lines[len(r.lines)-maxLogLines:]
	}
	r.log.SetContent(strings.Join(r.lines, "\n"))
	r.log.GotoBottom()
	return r
}

// quit releases the event subscription and ends the session.
func (r Root) quit() (tea.Model, tea.Cmd) {
	r.cleanup()
	return r, tea.Quit
}

type eventMsg report.Event

type statusMsg service.Status

type submitErrorMsg struct {
	err error
}

// doWaitForEvent waits for the next transmission event.
func (r Root) doWaitForEvent() tea.Cmd {
	events := r.events
	done := r.done
	return func() tea.Msg {
		select {
		case e := <-events:
			return eventMsg(e)
		case <-done:
			return nil
		}
	}
}

// doReloadStatus refreshes the daemon status once per second.
func (r Root) doReloadStatus() tea.Cmd {
	api := r.api
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusMsg(api.Status())
	})
}

// doSubmit queues the given text for transmission.
func (r Root) doSubmit(text string) tea.Cmd {
	api := r.api
	return func() tea.Msg {
		if _, err := api.Submit(context.Background(), text, "ssh"); err != nil {
			return submitErrorMsg{err: err}
		}
		return nil
	}
}
