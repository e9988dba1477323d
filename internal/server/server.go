// Package server exposes the tool registry and agent catalog over HTTP and
// NATS.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinayprograms/edinburgh/internal/agents"
	"github.com/vinayprograms/edinburgh/internal/logging"
	"github.com/vinayprograms/edinburgh/internal/tools"
)

// Greeting is the body served at the root path.
const Greeting = "Hello Edinburgh!"

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API.
type Server struct {
	tools  *tools.Registry
	agents *agents.Catalog
	logger *logging.Logger
	engine *gin.Engine
}

// New builds the router with middleware and routes registered.
func New(reg *tools.Registry, catalog *agents.Catalog, logger *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		tools:  reg,
		agents: catalog,
		logger: logger,
		engine: gin.New(),
	}

	s.engine.Use(requestID(), requestLogger(logger), recovery(logger))

	s.engine.GET("/", s.handleRoot)
	api := s.engine.Group("/api")
	api.GET("/tools", s.handleListTools)
	api.POST("/tools/:id/execute", s.handleExecuteTool)
	api.GET("/agents", s.handleListAgents)
	api.GET("/agents/:id", s.handleGetAgent)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}

func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.tools.Definitions()})
}

// executeRequest is the body of POST /api/tools/:id/execute.
type executeRequest struct {
	Args map[string]interface{} `json:"args"`
}

func (s *Server) handleExecuteTool(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, Envelope{Error: "invalid request body: " + err.Error(), Code: CodeInvalidArgument})
		return
	}

	result, err := s.tools.Execute(c.Request.Context(), c.Param("id"), req.Args)
	if err != nil {
		status, env := errorEnvelope(err)
		c.JSON(status, env)
		return
	}
	c.JSON(http.StatusOK, Envelope{Result: result})
}

func (s *Server) handleListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": s.agents.Agents()})
}

func (s *Server) handleGetAgent(c *gin.Context) {
	agent, err := s.agents.Get(c.Param("id"))
	if err != nil {
		status, env := errorEnvelope(err)
		c.JSON(status, env)
		return
	}
	c.JSON(http.StatusOK, agent)
}
