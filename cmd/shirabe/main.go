// Package main is the Shirabe CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akiyama/shirabe/internal/comments"
	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/content"
	"github.com/akiyama/shirabe/internal/mail"
	"github.com/akiyama/shirabe/internal/models"
	"github.com/akiyama/shirabe/internal/search"
	"github.com/akiyama/shirabe/internal/server"
	"github.com/akiyama/shirabe/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shirabe/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "tags":
		runTags()
	case "version", "--version", "-v":
		fmt.Printf("shirabe version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store := content.NewClient(&cfg.Content, logger)
	engine := search.NewEngine(store, &cfg.Search, logger)

	var commentRepo comments.Repository
	if cfg.Storage.CommentsPath != "" {
		repo, repoErr := comments.NewSQLiteRepository(cfg.Storage.CommentsPath)
		if repoErr != nil {
			logger.Fatal("Failed to open comments database", zap.Error(repoErr))
		}
		commentRepo = repo
	} else {
		logger.Warn("no comments database configured, comments will not survive restarts")
		commentRepo = comments.NewMemoryRepository()
	}
	defer commentRepo.Close()

	var mailer mail.Sender
	if cfg.Mail.APIKey != "" {
		mailer = mail.NewClient(&cfg.Mail)
	} else {
		logger.Warn("no mail API key configured, contact form disabled")
	}

	srv := server.NewServer(engine, commentRepo, mailer, &cfg.Server, logger)

	// Hot-reload search tuning when the config file changes.
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	cfgWatcher := config.NewWatcher(resolvedConfigPath, func(next *config.Config) {
		engine.Reload(&next.Search)
	}, logger)
	if err := cfgWatcher.Start(watchCtx); err != nil {
		logger.Warn("config watcher not started", zap.Error(err))
	}
	defer cfgWatcher.Stop()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	language := fs.String("language", "", "content language (defaults to the server's default)")
	asJSON := fs.Bool("json", false, "print the raw JSON response")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: shirabe search [flags] <query>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	query := buildSearchQuery(fs.Args())
	if query == "" {
		fs.Usage()
		os.Exit(1)
	}

	params := url.Values{"q": {query}}
	if *language != "" {
		params.Set("language", *language)
	}
	var response models.SearchResponse
	if err := getJSON(*serverURL+"/api/search?"+params.Encode(), &response); err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(response, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Printf("%d results for %q\n\n", response.Count, response.Query)
	for i, item := range response.Results {
		fmt.Printf("%2d. [%g] %s (%s)\n", i+1, item.Score, item.Title, item.Type)
		if item.Excerpt != "" {
			fmt.Printf("    %s\n", utils.Truncate(item.Excerpt, 100))
		}
	}
}

func runTags() {
	fs := flag.NewFlagSet("tags", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	language := fs.String("language", "", "content language (defaults to the server's default)")
	_ = fs.Parse(os.Args[2:])

	endpoint := *serverURL + "/api/tags"
	if *language != "" {
		endpoint += "?language=" + url.QueryEscape(*language)
	}
	var response struct {
		Tags  []models.TagCount `json:"tags"`
		Count int               `json:"count"`
	}
	if err := getJSON(endpoint, &response); err != nil {
		fmt.Fprintf(os.Stderr, "Tag fetch failed: %v\n", err)
		os.Exit(1)
	}
	for _, tc := range response.Tags {
		fmt.Printf("%4d  %s\n", tc.Count, tc.Tag)
	}
}

// getJSON fetches a URL and decodes the JSON body into out.
func getJSON(endpoint string, out interface{}) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("server returned HTTP %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("server returned HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printUsage() {
	fmt.Println(`Shirabe - content search and site API

Usage:
  shirabe <command> [flags]

Commands:
  server    Start the API server
  search    Query a running server
  tags      Show the tag cloud from a running server
  version   Print version
  help      Show this help

Run 'shirabe <command> -h' for command flags.`)
}
