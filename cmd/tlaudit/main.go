// Command tlaudit finds untranslated strings in Power BI report definitions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/Easy-Infra-Ltd/easy-logger"
	"github.com/ZaguanLabs/tlaudit"
	"github.com/ZaguanLabs/tlaudit/cache"
	"github.com/ZaguanLabs/tlaudit/internal/config"
	zlog "github.com/ZaguanLabs/tlaudit/internal/logger"
	"github.com/ZaguanLabs/tlaudit/mcpserver"
	"github.com/ZaguanLabs/tlaudit/report"
	"github.com/joho/godotenv"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = tlaudit.Version
	commit    = tlaudit.GitCommit
	buildDate = tlaudit.BuildDate
)

// errIssuesFound makes the process exit with status 2.
var errIssuesFound = errors.New("suspected untranslated content found")

const usage = `Usage: tlaudit <command> [flags] <pages_dir>

Commands:
  scan       List suspected untranslated strings
  missing    List projections without a displayName override
  validate   Print displayName coverage and a PASS/FAIL verdict
  serve      Run the MCP server (stdio or http)
  version    Show version

Run "tlaudit <command> -h" for the flags of a command.
`

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errIssuesFound):
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return runContext(context.Background(), args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("a command is required")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "scan":
		return runScan(ctx, rest, stdout, stderr)
	case "missing":
		return runMissing(ctx, rest, stdout, stderr)
	case "validate":
		return runValidate(ctx, rest, stdout, stderr)
	case "serve":
		return runServe(ctx, rest, stderr)
	case "version", "-version", "--version":
		printVersion(stdout)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", tlaudit.Name, version)
	if commit != "unknown" && commit != "" {
		fmt.Fprintf(w, "  commit:  %s\n", commit)
	}
	if buildDate != "unknown" && buildDate != "" {
		fmt.Fprintf(w, "  built:   %s\n", buildDate)
	}
}

// commonFlags are shared by every audit command. Unset flags keep the
// configured value.
type commonFlags struct {
	configFile string
	lang       string
	exceptions string
	workers    int
	logLevel   string
	cacheKind  string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configFile, "config", "", "Config file (default: tlaudit.yaml in ., ./config or ~/.config/tlaudit)")
	fs.StringVar(&c.lang, "lang", "", "Target language tag (e.g., sv-SE, de, fr-FR)")
	fs.StringVar(&c.exceptions, "exceptions", "", "Exceptions file (JSON or YAML)")
	fs.IntVar(&c.workers, "workers", 0, "Number of files scanned in parallel")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.cacheKind, "cache", "", "Extraction cache backend (none, memory, redis)")
	return c
}

// settings loads the configuration and applies flag overrides.
func (c *commonFlags) settings() (*config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	if c.lang != "" {
		cfg.TargetLanguage = c.lang
	}
	if c.exceptions != "" {
		cfg.ExceptionsFile = c.exceptions
	}
	if c.workers > 0 {
		cfg.Concurrency = c.workers
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.cacheKind != "" {
		cfg.Cache.Backend = c.cacheKind
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env is everything an audit command needs, built from the settings.
type env struct {
	cfg     *config.Config
	log     *zlog.Logger
	opts    []tlaudit.AuditorOption
	auditor *tlaudit.Auditor
	closers []io.Closer
}

func (c *commonFlags) env(stderr io.Writer) (*env, error) {
	cfg, err := c.settings()
	if err != nil {
		return nil, err
	}

	log, err := zlog.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	opts := []tlaudit.AuditorOption{
		tlaudit.WithLogger(log.Logger),
		tlaudit.WithConcurrency(cfg.Concurrency),
		tlaudit.WithExceptionsFile(cfg.ExceptionsFile),
	}

	rc, err := cache.New(cfg.Cache.Options())
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	if rc != nil {
		opts = append(opts, tlaudit.WithCache(rc))
		if closer, ok := rc.(io.Closer); ok {
			e.closers = append(e.closers, closer)
		}
	}

	e.opts = opts
	e.auditor = tlaudit.NewAuditor(cfg.TargetLanguage, opts...)
	return e, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
	_ = e.log.Sync()
}

// pagesDir returns the single positional argument.
func pagesDir(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("exactly one pages directory is required")
	}
	return fs.Arg(0), nil
}

// openOutput returns stdout, or the named file when path is set.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) // #nosec G304 - CLI tool writes user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func runScan(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tlaudit scan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := addCommonFlags(fs)
	format := fs.String("format", "", "Output format: text, json or html (default from config: text)")
	output := fs.String("o", "", "Output file (default: stdout)")
	baseline := fs.String("baseline", "", "Previous JSON report; print what changed since")
	failOnIssues := fs.Bool("fail-on-issues", false, "Exit with status 2 when anything is found")

	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, err := pagesDir(fs)
	if err != nil {
		return err
	}

	e, err := common.env(stderr)
	if err != nil {
		return err
	}
	defer e.Close()
	if *format == "" {
		*format = e.cfg.Report.Format
	}

	result, err := e.auditor.Scan(ctx, dir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out, closeOut, err := openOutput(*output, stdout)
	if err != nil {
		return err
	}

	if *baseline != "" {
		err = writeDiff(out, *baseline, result, *format)
	} else {
		meta := report.Meta{
			TargetLanguage: e.auditor.Profile().Tag,
			Root:           dir,
			GeneratedAt:    time.Now(),
		}
		err = writeFindings(out, result, meta, *format)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if *failOnIssues && !result.Clean() {
		return errIssuesFound
	}
	return nil
}

func writeFindings(w io.Writer, result *tlaudit.Result, meta report.Meta, format string) error {
	switch format {
	case "text":
		text := report.FormatFindings(result)
		if result.Clean() {
			text += "\n"
		}
		_, err := io.WriteString(w, text)
		return err
	case "json":
		return report.WriteJSON(w, result, meta)
	case "html":
		return report.WriteHTML(w, result, meta)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeDiff(w io.Writer, baselinePath string, result *tlaudit.Result, format string) error {
	f, err := os.Open(baselinePath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading baseline: %w", err)
	}
	defer f.Close()

	old, err := report.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("reading baseline: %w", err)
	}

	diff := tlaudit.DiffResults(old, result)
	switch format {
	case "text":
		_, err = io.WriteString(w, report.FormatDiff(diff))
		return err
	case "json":
		return report.Encode(w, diff)
	default:
		return fmt.Errorf("format %q is not supported with -baseline", format)
	}
}

func runMissing(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tlaudit missing", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := addCommonFlags(fs)
	jsonOutput := fs.Bool("json", false, "Output the listing as JSON")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, err := pagesDir(fs)
	if err != nil {
		return err
	}

	e, err := common.env(stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	missing, err := e.auditor.MissingDisplayNames(ctx, dir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out, closeOut, err := openOutput(*output, stdout)
	if err != nil {
		return err
	}
	if *jsonOutput {
		err = report.Encode(out, missing)
	} else {
		_, err = fmt.Fprintln(out, report.FormatMissing(missing))
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func runValidate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tlaudit validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := addCommonFlags(fs)
	jsonOutput := fs.Bool("json", false, "Output the coverage report as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, err := pagesDir(fs)
	if err != nil {
		return err
	}

	e, err := common.env(stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	cov, err := e.auditor.Coverage(ctx, dir)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if *jsonOutput {
		err = report.Encode(stdout, cov)
	} else {
		_, err = fmt.Fprintln(stdout, report.FormatCoverage(cov))
	}
	if err != nil {
		return err
	}

	if cov.Verdict == tlaudit.VerdictFail {
		return errIssuesFound
	}
	return nil
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tlaudit serve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	common := addCommonFlags(fs)
	transport := fs.String("transport", "", "MCP transport: stdio or http")
	addr := fs.String("addr", "", "HTTP listen address")
	path := fs.String("path", "", "HTTP endpoint path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := common.env(stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := mcpserver.Config{
		Transport:      e.cfg.MCP.Transport,
		Addr:           e.cfg.MCP.Addr,
		Path:           e.cfg.MCP.Path,
		TargetLanguage: e.cfg.TargetLanguage,
		ExceptionsFile: e.cfg.ExceptionsFile,
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *path != "" {
		cfg.Path = *path
	}

	slogger := logger.CreateLoggerFromEnv(nil, "blue").With("process", tlaudit.Name)
	return mcpserver.New(cfg, slogger, e.opts...).Run(ctx)
}
