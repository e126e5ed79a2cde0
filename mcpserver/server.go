// Package mcpserver exposes the audit as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ZaguanLabs/tlaudit"
	"github.com/ZaguanLabs/tlaudit/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Transports accepted by Config.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Tool names.
const (
	ToolScan     = "scan_english_remaining"
	ToolMissing  = "scan_missing_displaynames"
	ToolValidate = "validate_translation_coverage"
)

const shutdownTimeout = 5 * time.Second

// Config selects the transport and the defaults for omitted tool arguments.
type Config struct {
	Transport      string
	Addr           string // HTTP listen address
	Path           string // HTTP endpoint path
	TargetLanguage string
	ExceptionsFile string
}

// Server is an MCP server with the audit tools registered.
type Server struct {
	Server *mcp.Server
	cfg    Config
	opts   []tlaudit.AuditorOption
	logger *slog.Logger
}

// New creates the server. opts (logger, cache, concurrency) apply to every
// Auditor the tools create.
func New(cfg Config, logger *slog.Logger, opts ...tlaudit.AuditorOption) *Server {
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = tlaudit.DefaultLanguage
	}
	if cfg.Path == "" {
		cfg.Path = "/mcp"
	}

	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    tlaudit.Name,
			Version: tlaudit.FullVersion(),
		},
		&mcp.ServerOptions{Logger: logger},
	)
	s := &Server{
		Server: srv,
		cfg:    cfg,
		opts:   opts,
		logger: logger.With("area", "mcp"),
	}
	s.registerTools()
	return s
}

// Run serves on the configured transport until ctx is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case "", TransportStdio:
		s.logger.Info("starting stdio transport")
		return s.Server.Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return fmt.Errorf("unsupported transport: %s", s.cfg.Transport)
	}
}

func (s *Server) runHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return s.Server },
		&mcp.StreamableHTTPOptions{Logger: s.logger},
	)

	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, handler)

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.logger.Info("starting HTTP transport", "addr", ln.Addr(), "path", s.cfg.Path)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// toolArgs are the arguments shared by all tools. Empty values fall back to
// the server defaults.
type toolArgs struct {
	PagesDir       string `json:"pages_dir"`
	TargetLanguage string `json:"target_language"`
	ExceptionsFile string `json:"exceptions_file"`
}

func pagesDirSchema(withLanguage bool) map[string]any {
	props := map[string]any{
		"pages_dir": map[string]any{
			"type":        "string",
			"description": "Path to the report definition pages directory",
		},
		"exceptions_file": map[string]any{
			"type":        "string",
			"description": "Optional JSON or YAML exceptions file (skip_nqr, known_good, translations)",
		},
	}
	if withLanguage {
		props["target_language"] = map[string]any{
			"type":        "string",
			"description": "Target language tag, e.g. sv-SE (prefixes such as \"fr\" are accepted)",
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"pages_dir"},
	}
}

func (s *Server) registerTools() {
	s.Server.AddTool(&mcp.Tool{
		Name: ToolScan,
		Description: "Deep-scan all visual.json and page.json files for suspected untranslated content. " +
			"Checks titles, subtitles, displayNames, missing displayNames, textboxes, " +
			"placeholders, slicer/filter header text and button labels.",
		InputSchema: pagesDirSchema(true),
	}, s.handle(ToolScan, func(ctx context.Context, a *tlaudit.Auditor, dir string) (string, error) {
		result, err := a.Scan(ctx, dir)
		if err != nil {
			return "", err
		}
		return report.FormatFindings(result), nil
	}))

	s.Server.AddTool(&mcp.Tool{
		Name:        ToolMissing,
		Description: "Find all projections with a nativeQueryRef but no displayName override.",
		InputSchema: pagesDirSchema(false),
	}, s.handle(ToolMissing, func(ctx context.Context, a *tlaudit.Auditor, dir string) (string, error) {
		missing, err := a.MissingDisplayNames(ctx, dir)
		if err != nil {
			return "", err
		}
		return report.FormatMissing(missing), nil
	}))

	s.Server.AddTool(&mcp.Tool{
		Name: ToolValidate,
		Description: "Run the full deep scan and produce a PASS/FAIL verdict with displayName coverage. " +
			"Checks titles, displayNames, textboxes, placeholders, header text, button labels, " +
			"page names and missing displayNames.",
		InputSchema: pagesDirSchema(true),
	}, s.handle(ToolValidate, func(ctx context.Context, a *tlaudit.Auditor, dir string) (string, error) {
		cov, err := a.Coverage(ctx, dir)
		if err != nil {
			return "", err
		}
		return report.FormatCoverage(cov), nil
	}))
}

type auditFunc func(ctx context.Context, a *tlaudit.Auditor, pagesDir string) (string, error)

func (s *Server) handle(name string, fn auditFunc) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args toolArgs
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}
		if args.PagesDir == "" {
			return errorResult("pages_dir is required"), nil
		}

		a := s.auditor(args)
		s.logger.Debug("tool call", "tool", name, "pages_dir", args.PagesDir, "target_language", a.Profile().Tag)

		text, err := fn(ctx, a, args.PagesDir)
		if err != nil {
			s.logger.Warn("tool call failed", "tool", name, "error", err)
			return errorResult(err.Error()), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

// auditor builds a fresh Auditor so exceptions are re-read on every call.
func (s *Server) auditor(args toolArgs) *tlaudit.Auditor {
	lang := args.TargetLanguage
	if lang == "" {
		lang = s.cfg.TargetLanguage
	}
	exFile := args.ExceptionsFile
	if exFile == "" {
		exFile = s.cfg.ExceptionsFile
	}
	opts := append([]tlaudit.AuditorOption{}, s.opts...)
	opts = append(opts, tlaudit.WithExceptionsFile(exFile))
	return tlaudit.NewAuditor(lang, opts...)
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
