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

	"github.com/haukened/linkscan/internal/scan/common/clock"
	"github.com/haukened/linkscan/internal/scan/common/log"
	"github.com/haukened/linkscan/internal/scan/config"
	"github.com/haukened/linkscan/internal/scan/domain"
	"github.com/haukened/linkscan/internal/scan/gateways/console"
	"github.com/haukened/linkscan/internal/scan/repos/allowlist"
	"github.com/haukened/linkscan/internal/scan/repos/allowlist/bloom"
	"github.com/haukened/linkscan/internal/scan/repos/allowlist/bolt"
	"github.com/haukened/linkscan/internal/scan/repos/allowlist/parsers"
	"github.com/haukened/linkscan/internal/scan/repos/verdictcache"
	"github.com/haukened/linkscan/internal/scan/services/classifier"
	"github.com/haukened/linkscan/internal/scan/services/scanner"
	"github.com/haukened/linkscan/internal/scan/services/scorer"
)

const (
	version = "0.1.0-dev"
	appName = "linkscan"
	prompt  = "URL: "

	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitFound = 3 // a URL received the -fail-on verdict
)

// Application holds the wired components of the scanner.
type Application struct {
	config  *config.AppConfig
	repo    allowlist.Repository
	store   allowlist.Store
	cache   *verdictcache.Cache
	scanner *scanner.Scanner
}

// cliOptions are the command line flags layered on top of the configuration.
type cliOptions struct {
	file               string
	verbose            bool
	showVersion        bool
	typoThreshold      float64
	heuristicThreshold float64
	failOn             *domain.Verdict
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, so tests can drive it.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitError
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "%s %s\n", appName, version)
		return exitOK
	}
	cfg.TypoThreshold = opts.typoThreshold
	cfg.HeuristicThreshold = opts.heuristicThreshold
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Logging configuration error: %v\n", err)
		return exitError
	}
	logger := log.GetLogger()
	logger.Info(map[string]any{
		"version":             version,
		"env":                 cfg.Env,
		"log_level":           cfg.LogLevel,
		"typo_threshold":      cfg.TypoThreshold,
		"heuristic_threshold": cfg.HeuristicThreshold,
		"allow_files":         cfg.AllowFiles,
		"allow_db":            cfg.AllowDB,
		"workers":             cfg.Workers,
	}, "starting linkscan")

	app, err := buildApplication(cfg, logger, clock.RealClock{})
	if err != nil {
		fmt.Fprintf(stderr, "Startup error: %v\n", err)
		return exitError
	}
	defer app.Close()

	renderer := console.NewRenderer(stdout, opts.verbose)
	var decisions []domain.Decision
	if opts.file != "" {
		decisions, err = app.runBatch(ctx, opts.file, renderer)
	} else {
		decisions, err = app.runInteractive(ctx, stdin, stdout, renderer)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Scan error: %v\n", err)
		return exitError
	}
	if opts.failOn != nil && anyVerdict(decisions, *opts.failOn) {
		return exitFound
	}
	return exitOK
}

func anyVerdict(decisions []domain.Decision, v domain.Verdict) bool {
	for _, d := range decisions {
		if d.Verdict == v {
			return true
		}
	}
	return false
}

func parseFlags(args []string, cfg *config.AppConfig, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "f", "", "scan every URL listed in `file` (one per line) instead of prompting")
	fs.BoolVar(&opts.verbose, "v", false, "print the heuristic score breakdown")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	fs.Float64Var(&opts.typoThreshold, "typo-threshold", cfg.TypoThreshold, "similarity at or above which a domain is a near-duplicate")
	fs.Float64Var(&opts.heuristicThreshold, "heuristic-threshold", cfg.HeuristicThreshold, "risk score at or above which a URL is phishing")
	fs.Func("fail-on", "exit with status 3 when any URL gets this `verdict` (safe, phishing or unknown)", func(s string) error {
		v, err := domain.ParseVerdict(s)
		if err != nil {
			return err
		}
		opts.failOn = &v
		return nil
	})
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nWith no -f, URLs are read from standard input until %q.\n\n", appName, console.DoneWord)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments")
	}
	return opts, nil
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig, logger log.Logger, clk clock.Clock) (*Application, error) {
	store, err := buildStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open allow-list store: %w", err)
	}

	repo := allowlist.NewRepository(allowlist.Options{
		Store:   store,
		Factory: bloom.NewFactory(bloom.NewSizer()),
		FPRate:  cfg.BloomFPRate,
		Clock:   clk,
		Logger:  logger,
	})
	if err := loadAllowList(cfg, repo, store, logger, clk); err != nil {
		_ = store.Close()
		return nil, err
	}

	cache, err := verdictcache.New(cfg.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}

	sc := scorer.New(scorer.Options{
		Weights:  cfg.Weights(),
		Keywords: cfg.Keywords,
	})
	logger.Info(map[string]any{
		"keywords": sc.Keywords(),
		"weights":  fmt.Sprintf("%+v", sc.Weights()),
	}, "risk scorer configured")
	cls := classifier.New(classifier.Options{Scorer: sc})

	svc, err := scanner.New(scanner.Options{
		Classifier:         cls,
		AllowList:          snapshotSource(repo),
		Cache:              cache,
		Logger:             logger,
		Workers:            cfg.Workers,
		TypoThreshold:      cfg.TypoThreshold,
		HeuristicThreshold: cfg.HeuristicThreshold,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to build scanner: %w", err)
	}

	return &Application{
		config:  cfg,
		repo:    repo,
		store:   store,
		cache:   cache,
		scanner: svc,
	}, nil
}

func buildStore(cfg *config.AppConfig, logger log.Logger) (allowlist.Store, error) {
	if cfg.AllowDB == "" {
		return allowlist.NewMemoryStore(), nil
	}
	store, err := bolt.New(cfg.AllowDB)
	if err != nil {
		return nil, err
	}
	logger.Info(map[string]any{
		"path":    cfg.AllowDB,
		"entries": store.Stats().Entries,
	}, "allow-list database opened")
	return store, nil
}

// loadAllowList publishes the first snapshot. A persisted store with no
// configured files is served as-is; otherwise the store is rebuilt from the
// inline domains plus every allow file or directory.
func loadAllowList(cfg *config.AppConfig, repo allowlist.Repository, store allowlist.Store, logger log.Logger, clk clock.Clock) error {
	if len(cfg.AllowFiles) == 0 && store.Stats().Entries > 0 {
		if err := repo.Reload(); err != nil {
			return fmt.Errorf("failed to reload allow-list: %w", err)
		}
		return nil
	}

	now := clk.Now()
	entries := parsers.FromNames(cfg.AllowDomains, "config", logger, now)
	for _, path := range cfg.AllowFiles {
		fileEntries, err := parsers.ParsePath(path, logger, now)
		if err != nil {
			return fmt.Errorf("failed to load allow-list: %w", err)
		}
		logger.Info(map[string]any{
			"path":    path,
			"entries": len(fileEntries),
		}, "allow-list source parsed")
		entries = append(entries, fileEntries...)
	}
	if len(entries) == 0 {
		logger.Warn(map[string]any{
			"allow_domains": len(cfg.AllowDomains),
			"allow_files":   len(cfg.AllowFiles),
		}, "allow-list is empty, every URL falls through to the heuristic rule")
	}
	if err := repo.Update(entries); err != nil {
		return fmt.Errorf("failed to publish allow-list: %w", err)
	}
	return nil
}

// snapshotSource adapts the repository to the scanner's allow-list source.
func snapshotSource(repo allowlist.Repository) scanner.AllowListSource {
	return func() (scanner.AllowList, error) {
		s, err := repo.Snapshot()
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (a *Application) runBatch(ctx context.Context, path string, r *console.Renderer) ([]domain.Decision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	urls, err := console.ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("read url list %s: %w", path, err)
	}
	return a.scanAndRender(ctx, urls, r)
}

func (a *Application) runInteractive(ctx context.Context, in io.Reader, out io.Writer, r *console.Renderer) ([]domain.Decision, error) {
	fmt.Fprintf(out, "Enter URLs to scan, one per line. Type %q when finished.\n", console.DoneWord)
	urls, err := console.ReadInteractive(in, out, prompt)
	if err != nil {
		return nil, fmt.Errorf("read urls: %w", err)
	}
	return a.scanAndRender(ctx, urls, r)
}

func (a *Application) scanAndRender(ctx context.Context, urls []string, r *console.Renderer) ([]domain.Decision, error) {
	if len(urls) == 0 {
		return nil, r.RenderEmpty()
	}
	decisions, err := a.scanner.Scan(ctx, urls)
	if err != nil {
		return nil, err
	}
	if err := r.RenderHeader(); err != nil {
		return nil, err
	}
	if err := r.RenderAll(decisions); err != nil {
		return nil, err
	}
	sum := scanner.Summarize(decisions)
	return decisions, r.RenderSummary(sum.Safe, sum.Phishing, sum.Unknown)
}

// Scan exposes the wired scanner for callers that bypass the console.
func (a *Application) Scan(ctx context.Context, urls []string) ([]domain.Decision, error) {
	return a.scanner.Scan(ctx, urls)
}

// Close releases the allow-list store and logs cache statistics.
func (a *Application) Close() error {
	st := a.cache.Stats()
	log.Debug(map[string]any{
		"hits":      st.Hits,
		"misses":    st.Misses,
		"evictions": st.Evictions,
		"size":      st.Size,
	}, "verdict cache statistics")
	return a.store.Close()
}
