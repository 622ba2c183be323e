package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	jpformatter "github.com/baditaflorin/go_jp_formatter"
	"github.com/baditaflorin/go_jp_formatter/internal/adapters/profile"
	"github.com/baditaflorin/go_jp_formatter/internal/ports"
)

// formatTimeout bounds a single /format request.
const formatTimeout = 30 * time.Second

// Request represents a formatting request. Options and Rules are merged;
// when both are absent the server's default profile applies.
type Request struct {
	Text    string               `json:"text"`
	Options *jpformatter.Options `json:"options,omitempty"`
	Rules   string               `json:"rules,omitempty"`
}

// Response represents a formatting response
type Response struct {
	Text           string                 `json:"text"`
	Applied        []jpformatter.RuleName `json:"applied"`
	Changed        bool                   `json:"changed"`
	InputLength    int                    `json:"input_length"`
	OutputLength   int                    `json:"output_length"`
	ProcessingTime string                 `json:"processing_time,omitempty"`
	Details        map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type textFormatter interface {
	Format(ctx context.Context, text string, opts jpformatter.Options) jpformatter.Result
}

type server struct {
	formatter textFormatter
	logger    ports.Logger
	defaults  jpformatter.Options
	metrics   fasthttp.RequestHandler
}

func newServer(formatter textFormatter, logger ports.Logger, gatherer prometheus.Gatherer, defaults jpformatter.Options) *server {
	return &server{
		formatter: formatter,
		logger:    logger,
		defaults:  defaults,
		metrics:   fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/rules":
		s.handleRules(ctx)
	case "/format":
		s.handleFormat(ctx)
	case "/metrics":
		s.metrics(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleRules lists the rules in the order they run
func (s *server) handleRules(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"rules":    jpformatter.Rules(),
		"defaults": s.defaults,
	})
}

// handleFormat handles formatting requests
func (s *server) handleFormat(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	opts, err := s.resolveOptions(req)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, err.Error())
		return
	}

	c, cancel := context.WithTimeout(ctx, formatTimeout)
	defer cancel()

	result := s.formatter.Format(c, req.Text, opts)
	if msg, failed := result.Details["error"].(string); failed {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		s.writeJSONError(ctx, msg)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, Response{
		Text:           result.Text,
		Applied:        result.Applied,
		Changed:        result.Changed,
		InputLength:    result.InputLength,
		OutputLength:   result.OutputLength,
		ProcessingTime: result.Elapsed.String(),
		Details:        result.Details,
	})
}

func (s *server) resolveOptions(req Request) (jpformatter.Options, error) {
	if req.Options == nil && req.Rules == "" {
		return s.defaults, nil
	}

	var opts jpformatter.Options
	if req.Options != nil {
		opts = *req.Options
	}
	if req.Rules != "" {
		named, err := jpformatter.ParseRules(req.Rules)
		if err != nil {
			return jpformatter.Options{}, err
		}
		opts = profile.Merge(opts, named)
	}
	return opts, nil
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
