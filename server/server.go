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

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/opticbeacon/morsed/service"
)

// Config for the HTTP & SSH servers.
type Config struct {
	// Host interface to listen on
	Host string
	// Port to listen on for HTTP requests
	HTTPPort int
	// Port to listen on for SSH requests
	SSHPort int
}

// Server runs the HTTP & SSH servers for the daemon.
type Server struct {
	Config
	log     zerolog.Logger
	ui      UI
	service Service
}

type UI interface {
	// Handler builds a Bubble Tea model for the incoming ssh.Session,
	// plus tea.ProgramOptions (such as tea.WithAltScreen) on a session
	// by session basis.
	Handler(s ssh.Session) (tea.Model, []tea.ProgramOption)
}

// Service contains the part of the daemon API used by the HTTP handlers.
type Service interface {
	Submit(ctx context.Context, text, origin string) (service.Message, error)
	Status() service.Status
}

// New configures a new Server.
func New(cfg Config, log zerolog.Logger, ui UI, svc Service) (*Server, error) {
	return &Server{
		Config:  cfg,
		log:     log.With().Str("component", "server").Logger(),
		ui:      ui,
		service: svc,
	}, nil
}

// Run the servers until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	// Prepare HTTP listener
	log := s.log
	httpAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
	httpLis, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to listen on address %s", httpAddr)
	}

	// Prepare HTTP server
	httpSrv := http.Server{
		Handler: s.newHTTPRouter(),
	}

	// Prepare SSH server
	sshAddr := net.JoinHostPort(s.Host, strconv.Itoa(s.SSHPort))
	sshServer, err := wish.NewServer(
		// The address the server will listen to.
		wish.WithAddress(sshAddr),

		// The SSH server needs its own keys, this will create an ED25519
		// keypair in the given path if it doesn't exist yet.
		wish.WithHostKeyPath(".ssh/morsed_ed25519"),

		// Middlewares do something on a ssh.Session, and then call the next
		// middleware in the stack.
		wish.WithMiddleware(
			bubbletea.Middleware(s.ui.Handler),
			// The last item in the chain is the first to be called.
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("could not start SSH server: %w", err)
	}

	// Serve apis
	log.Debug().Str("address", httpAddr).Msg("Serving HTTP")
	go func() {
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to serve HTTP server")
		}
		log.Debug().Str("address", httpAddr).Msg("Done Serving HTTP")
	}()
	// Serve UI
	log.Debug().Str("address", sshAddr).Msg("Serving SSH")
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to serve SSH server")
		}
		log.Debug().Str("address", sshAddr).Msg("Done Serving SSH")
	}()

	// Wait until context closed
	<-ctx.Done()

	log.Info().Msg("Closing servers")
	httpSrv.Shutdown(context.Background())
	sshServer.Shutdown(context.Background())

	return nil
}

// newHTTPRouter builds the HTTP route table.
func (s *Server) newHTTPRouter() *echo.Echo {
	httpRouter := echo.New()
	httpRouter.POST("/api/transmit", s.handleTransmit)
	httpRouter.GET("/api/status", s.handleStatus)
	httpRouter.GET("/healthz", healthHandler)
	httpRouter.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	httpRouter.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	return httpRouter
}

// TransmitRequest is the payload of a transmit request.
type TransmitRequest struct {
	Text string `json:"text"`
}

// handleTransmit queues the posted text for transmission.
func (s *Server) handleTransmit(c echo.Context) error {
	var req TransmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	msg, err := s.service.Submit(c.Request().Context(), req.Text, "http")
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyText):
			return echo.NewHTTPError(http.StatusBadRequest, "text is empty")
		case errors.Is(err, service.ErrQueueFull):
			return echo.NewHTTPError(http.StatusTooManyRequests, "transmission queue is full")
		default:
			return err
		}
	}
	return c.JSON(http.StatusAccepted, msg)
}

// handleStatus returns a snapshot of the daemon state.
func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Status())
}

func healthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
