// Command meibo serves and queries a community member directory built from a
// raw profile feed.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/meibo/internal/cli"
	"github.com/hyperjump/meibo/internal/config"
	"github.com/hyperjump/meibo/internal/directory"
	"github.com/hyperjump/meibo/internal/loader"
	"github.com/hyperjump/meibo/internal/match"
	"github.com/hyperjump/meibo/internal/models"
	"github.com/hyperjump/meibo/internal/normalize"
	"github.com/hyperjump/meibo/internal/server"
	"github.com/hyperjump/meibo/internal/watcher"
	"github.com/hyperjump/meibo/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/meibo/config.yaml"
	defaultServerURL  = "http://localhost:8080"
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "similar":
		runSimilar()
	case "trending":
		runTrending()
	case "suggest":
		runSuggest()
	case "stats":
		runStats()
	case "version", "--version", "-v":
		fmt.Printf("meibo %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// loadConfig reads the config file. When path is the packaged default but no
// file exists there, it falls back to config.yaml in the current directory so
// development checkouts work without installing anything.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if _, err := os.Stat("config.yaml"); err == nil {
				path = "config.yaml"
			}
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Components bundles everything a running command needs from the feed side.
type Components struct {
	Loader *loader.Loader
	Engine *directory.Engine
}

// initializeComponents loads the profile feed and builds a query engine
// snapshot from it.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	normalizer := newNormalizer(cfg)
	ld := loader.New(cfg.Source, normalizer, logger)

	profiles, err := ld.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile feed: %w", err)
	}

	engine := directory.NewEngine(profiles, engineOptions(cfg))
	return &Components{Loader: ld, Engine: engine}, nil
}

// newNormalizer extends the built-in keyword and alias tables with the
// config-supplied entries.
func newNormalizer(cfg *config.Config) *normalize.Normalizer {
	var extra []normalize.KeywordPattern
	for _, p := range cfg.Keywords.Roles {
		extra = append(extra, normalize.KeywordPattern{Pattern: p, Category: normalize.CategoryRole})
	}
	for _, p := range cfg.Keywords.Technologies {
		extra = append(extra, normalize.KeywordPattern{Pattern: p, Category: normalize.CategoryTechnology})
	}
	for _, p := range cfg.Keywords.Experience {
		extra = append(extra, normalize.KeywordPattern{Pattern: p, Category: normalize.CategoryExperience})
	}

	opts := []normalize.Option{normalize.WithKeywordPatterns(extra...)}
	if len(cfg.Locations.Aliases) > 0 {
		opts = append(opts, normalize.WithLocationAliases(cfg.Locations.Aliases))
	}
	return normalize.New(opts...)
}

// engineOptions maps config sections onto engine tuning knobs.
func engineOptions(cfg *config.Config) *directory.Options {
	return &directory.Options{
		Fuzzy: match.FuzzyOptions{
			MinTermLength: cfg.Search.FuzzyMinTermLength,
			MinWordLength: cfg.Search.FuzzyMinWordLength,
			Threshold:     cfg.Search.FuzzyThreshold,
		},
		Score: directory.ScoreWeights{
			Name:         cfg.Score.NameWeight,
			Professional: cfg.Score.ProfessionalWeight,
			Tag:          cfg.Score.TagWeight,
			Personal:     cfg.Score.PersonalWeight,
			Location:     cfg.Score.LocationWeight,
		},
		Similarity: directory.SimilarityWeights{
			Location: cfg.Similarity.LocationWeight,
			Tag:      cfg.Similarity.TagWeight,
			Keyword:  cfg.Similarity.KeywordWeight,
		},
		SuggestionLimit:    cfg.Search.SuggestionLimit,
		MinSuggestionInput: cfg.Search.MinSuggestionInput,
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(os.Args[2:])

	cfg, resolvedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedPath),
		zap.Bool("debug", debugMode))

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	srv := server.NewServer(components.Engine, &cfg.Server, logger)

	g, gctx := errgroup.WithContext(context.Background())

	if cfg.Source.Watch && cfg.Source.URL == "" {
		w := watcher.New(cfg.Source.Path, func() {
			reloadEngine(cfg, components, srv, logger)
		}, watcher.WithLogger(logger))
		if err := w.Start(gctx); err != nil {
			logger.Fatal("Failed to start feed watcher", zap.Error(err))
		}
		defer w.Stop()
		logger.Info("watching profile feed", zap.String("path", w.Path()))
	}

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		case <-gctx.Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// reloadEngine rebuilds the engine snapshot from the feed and swaps it into
// the running server. A failed reload keeps the current snapshot.
func reloadEngine(cfg *config.Config, components *Components, srv *server.Server, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
	defer cancel()

	profiles, err := components.Loader.Load(ctx)
	if err != nil {
		logger.Warn("feed reload failed, keeping current snapshot", zap.Error(err))
		return
	}
	srv.SwapEngine(directory.NewEngine(profiles, engineOptions(cfg)))
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	serverURL := fs.String("server", defaultServerURL, "Server URL, empty for direct mode")
	location := fs.String("location", "", "Filter by exact location")
	profession := fs.String("profession", "", "Filter by profession keyword")
	tags := fs.String("tags", "", "Filter by tags, comma separated")
	sortBy := fs.String("sort", "", "Sort order: name or recent")
	limit := fs.Int("limit", 0, "Maximum results, 0 for all")
	output := fs.String("output", "text", "Output format: text, compact, or json")
	fs.Parse(searchArgsReorder(os.Args[2:]))

	format, err := parseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	req := models.SearchRequest{
		Filters: models.FilterSpec{
			Search:     buildSearchQuery(fs.Args()),
			Location:   *location,
			Profession: *profession,
			Tags:       splitTags(*tags),
		},
		Sort:  *sortBy,
		Limit: *limit,
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		response = &models.SearchResponse{}
		if err := postJSON(*serverURL+"/api/v1/search", req, response); err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		response, err = searchDirect(*configPath, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WriteResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

// searchDirect runs a search against a freshly loaded feed, without a server.
func searchDirect(configPath string, req models.SearchRequest) (*models.SearchResponse, error) {
	engine, err := directEngine(configPath)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	start := time.Now()
	results := engine.Search(req.Filters)
	total := len(results)
	if req.Sort != "" {
		results = directory.SortResults(results, directory.SortCriterion(req.Sort))
	}
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	return &models.SearchResponse{
		Results:   results,
		Total:     total,
		QueryTime: time.Since(start).Milliseconds(),
		Filters:   req.Filters,
		Sort:      req.Sort,
	}, nil
}

// directEngine builds an engine for one-shot CLI queries.
func directEngine(configPath string) (*directory.Engine, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return components.Engine, nil
}

func runSimilar() {
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	serverURL := fs.String("server", defaultServerURL, "Server URL, empty for direct mode")
	count := fs.Int("count", 5, "Number of similar members to return")
	output := fs.String("output", "text", "Output format: text, compact, or json")
	fs.Parse(searchArgsReorder(os.Args[2:]))

	format, err := parseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	username := strings.TrimSpace(buildSearchQuery(fs.Args()))
	if username == "" {
		fmt.Fprintln(os.Stderr, "Usage: meibo similar <username> [flags]")
		os.Exit(1)
	}

	var results []models.SimilarResult
	if *serverURL != "" {
		var payload struct {
			Username string                 `json:"username"`
			Results  []models.SimilarResult `json:"results"`
		}
		path := fmt.Sprintf("/api/v1/members/%s/similar?count=%d", url.PathEscape(username), *count)
		if err := getJSON(*serverURL+path, &payload); err != nil {
			fmt.Fprintf(os.Stderr, "Similar lookup failed: %v\n", err)
			os.Exit(1)
		}
		results = payload.Results
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Similar lookup failed: %v\n", err)
			os.Exit(1)
		}
		results, err = engine.FindSimilarByUsername(username, *count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Similar lookup failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WriteSimilar(os.Stdout, username, results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

func runTrending() {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	serverURL := fs.String("server", defaultServerURL, "Server URL, empty for direct mode")
	limit := fs.Int("limit", 10, "Number of tags to return, 0 for all")
	output := fs.String("output", "text", "Output format: text, compact, or json")
	fs.Parse(os.Args[2:])

	format, err := parseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var tags []models.TagCount
	if *serverURL != "" {
		var payload struct {
			Tags []models.TagCount `json:"tags"`
		}
		path := fmt.Sprintf("/api/v1/tags/trending?limit=%d", *limit)
		if err := getJSON(*serverURL+path, &payload); err != nil {
			fmt.Fprintf(os.Stderr, "Trending lookup failed: %v\n", err)
			os.Exit(1)
		}
		tags = payload.Tags
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Trending lookup failed: %v\n", err)
			os.Exit(1)
		}
		tags = engine.TrendingTags(*limit)
	}

	if err := cli.WriteTrending(os.Stdout, tags, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	serverURL := fs.String("server", defaultServerURL, "Server URL, empty for direct mode")
	output := fs.String("output", "text", "Output format: text, compact, or json")
	fs.Parse(searchArgsReorder(os.Args[2:]))

	format, err := parseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	partial := buildSearchQuery(fs.Args())
	if strings.TrimSpace(partial) == "" {
		fmt.Fprintln(os.Stderr, "Usage: meibo suggest <partial> [flags]")
		os.Exit(1)
	}

	var suggestions []models.Suggestion
	if *serverURL != "" {
		var payload struct {
			Query       string              `json:"query"`
			Suggestions []models.Suggestion `json:"suggestions"`
		}
		path := "/api/v1/suggestions?q=" + url.QueryEscape(partial)
		if err := getJSON(*serverURL+path, &payload); err != nil {
			fmt.Fprintf(os.Stderr, "Suggestion lookup failed: %v\n", err)
			os.Exit(1)
		}
		suggestions = payload.Suggestions
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Suggestion lookup failed: %v\n", err)
			os.Exit(1)
		}
		suggestions = engine.Suggestions(partial)
	}

	if err := cli.WriteSuggestions(os.Stdout, partial, suggestions, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	serverURL := fs.String("server", defaultServerURL, "Server URL, empty for direct mode")
	output := fs.String("output", "text", "Output format: text, compact, or json")
	fs.Parse(os.Args[2:])

	format, err := parseFormat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var stats models.Stats
	if *serverURL != "" {
		if err := getJSON(*serverURL+"/api/v1/stats", &stats); err != nil {
			fmt.Fprintf(os.Stderr, "Stats lookup failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Stats lookup failed: %v\n", err)
			os.Exit(1)
		}
		stats = engine.Stats()
	}

	if err := cli.WriteStats(os.Stdout, stats, format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
		os.Exit(1)
	}
}

// searchArgsReorder moves flag tokens ahead of positional words so users can
// write `meibo search rust tokyo -limit 5`. flag.Parse stops at the first
// non-flag argument, so flags trailing the query would otherwise be swallowed
// into it.
func searchArgsReorder(args []string) []string {
	if len(args) == 0 {
		return args
	}
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			flags = append(flags, args[i+1])
			i++
		}
	}
	return append(flags, positional...)
}

// buildSearchQuery joins the positional words into one query string.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseFormat maps an -output flag value to a renderer format.
func parseFormat(name string) (cli.OutputFormat, error) {
	switch name {
	case "text", "":
		return cli.OutputText, nil
	case "compact":
		return cli.OutputCompact, nil
	case "json":
		return cli.OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact, or json)", name)
	}
}

// postJSON sends a JSON body to the server and decodes the JSON response.
func postJSON(endpoint string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// getJSON fetches a server endpoint and decodes the JSON response.
func getJSON(endpoint string, out interface{}) error {
	resp, err := http.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Print(`meibo - community member directory

Usage:
  meibo <command> [flags]

Commands:
  server     Start the directory HTTP server
  search     Search members by text, location, profession, and tags
  similar    List members similar to a given member
  trending   Show the most used profile tags
  suggest    Autocomplete locations and tags from a partial input
  stats      Show collection statistics
  version    Print version
  help       Show this help

Server flags:
  -config string   Path to config file (default ` + defaultConfigPath + `)
  -debug           Enable debug logging

Query flags (search, similar, trending, suggest, stats):
  -server string   Server URL, empty to query the feed directly (default ` + defaultServerURL + `)
  -config string   Config file for direct mode
  -output string   Output format: text, compact, or json (default text)

Search flags:
  -location string     Filter by exact location
  -profession string   Filter by profession keyword
  -tags string         Filter by tags, comma separated
  -sort string         Sort order: name or recent
  -limit int           Maximum results, 0 for all

Examples:
  meibo server -config ./config.yaml
  meibo search solana developer -location tokyo -sort name
  meibo search -tags web3,defi -output json -server ""
  meibo similar kenji -count 3
  meibo trending -limit 5
  meibo suggest tok
  meibo stats -output json
`)
}
