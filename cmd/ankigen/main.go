package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ankigen/ankigen/internal/apkg"
	"github.com/ankigen/ankigen/internal/config"
	"github.com/ankigen/ankigen/internal/domain"
	"github.com/ankigen/ankigen/internal/gitsource"
	"github.com/ankigen/ankigen/internal/parser"
)

func main() {
	flags := pflag.NewFlagSet("ankigen", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to a yaml config file")
	flags.String("deck-name", "", "Name of the generated deck")
	flags.String("source", "", "Deck directory or git URL to read cards from")
	flags.String("output", "deck.apkg", "Path to write the .apkg file to")
	flags.String("cache-dir", "repos", "Directory git deck sources are cloned into")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	setupLogging(cfg.LogLevel)

	deckDir, err := resolveSource(cfg)
	if err != nil {
		slog.Error("Failed to resolve deck source", "source", cfg.Source, "error", err)
		os.Exit(1)
	}

	cards, err := loadCards(deckDir)
	if err != nil {
		slog.Error("Failed to load cards", "dir", deckDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded cards", "count", len(cards), "dir", deckDir)

	out, err := apkg.CreateDeck(cards, cfg.DeckName)
	if err != nil {
		slog.Error("Deck generation failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		slog.Error("Failed to write deck file", "path", cfg.Output, "error", err)
		os.Exit(1)
	}
	slog.Info("Deck written", "path", cfg.Output, "bytes", len(out))
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// resolveSource returns a local directory to read deck files from, cloning
// or updating git sources first.
func resolveSource(cfg *config.Config) (string, error) {
	if !gitsource.IsGitURL(cfg.Source) {
		return cfg.Source, nil
	}
	local := filepath.Join(cfg.CacheDir, sanitizeRepoName(cfg.Source))
	return gitsource.Fetch(cfg.Source, local)
}

func sanitizeRepoName(url string) string {
	name := strings.TrimSuffix(url, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "deck"
	}
	return name
}

// loadCards walks the deck directory for .md files, parses their entries,
// and reads any referenced audio files into memory.
func loadCards(dir string) ([]domain.Card, error) {
	var cards []domain.Card

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, err := parser.ParseFile(path)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
		baseDir := filepath.Dir(path)
		for _, entry := range entries {
			card := domain.Card{
				SourceText: entry.SourceText,
				TargetText: entry.TargetText,
			}
			if entry.SourceAudioPath != "" {
				data, err := os.ReadFile(filepath.Join(baseDir, entry.SourceAudioPath))
				if err != nil {
					return fmt.Errorf("error reading audio %s: %w", entry.SourceAudioPath, err)
				}
				card.SourceAudio = data
			}
			if entry.TargetAudioPath != "" {
				data, err := os.ReadFile(filepath.Join(baseDir, entry.TargetAudioPath))
				if err != nil {
					return fmt.Errorf("error reading audio %s: %w", entry.TargetAudioPath, err)
				}
				card.TargetAudio = data
			}
			cards = append(cards, card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}
