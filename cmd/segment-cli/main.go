package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	segment "github.com/jamesainslie/go-segment"
	"github.com/jamesainslie/go-segment/internal/config"
	"github.com/jamesainslie/go-segment/internal/source"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	sentModel := flag.String("sent-model", "", "Path to sentence model (.model maxent or .onnx)")
	tokModel := flag.String("tok-model", "", "Path to token model (.model maxent or .onnx)")
	mode := flag.String("mode", "sentences", "Mode: sentences or tokens")
	alnum := flag.Bool("alnum", false, "Skip purely alphanumeric tokens")
	noAbbrev := flag.Bool("no-abbrev", false, "Allow breaks after known abbreviations")
	lines := flag.Bool("lines", false, "Read stdin and process each line independently")
	md := flag.Bool("markdown", false, "Read Markdown from stdin and process each block independently")
	probs := flag.Bool("probs", false, "Print the probability of each unit")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("segment-cli %s (%s, %s)\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sent-model":
			cfg.SentModel = *sentModel
		case "tok-model":
			cfg.TokModel = *tokModel
		case "alnum":
			cfg.AlphaNumeric = *alnum
		case "no-abbrev":
			if *noAbbrev {
				cfg.Abbreviations = nil
			}
		}
	})

	var inputs []string
	switch {
	case *md:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		inputs = source.Markdown(data)
	case *lines:
		if inputs, err = source.Lines(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	default:
		text := strings.Join(flag.Args(), " ")
		if text == "" {
			fmt.Fprintln(os.Stderr, "Usage: segment-cli -sent-model MODEL [OPTIONS] TEXT")
			flag.PrintDefaults()
			os.Exit(1)
		}
		inputs = []string{text}
	}

	ctx := context.Background()

	var (
		units [][]string
		ps    [][]float64
	)
	switch *mode {
	case "sentences":
		units, ps, err = runSentences(ctx, cfg, inputs, logger)
	case "tokens":
		units, ps, err = runTokens(ctx, cfg, inputs, logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i := range units {
		if i > 0 {
			fmt.Println()
		}
		for j, u := range units[i] {
			if *probs && j < len(ps[i]) {
				fmt.Printf("%.4f\t%s\n", ps[i][j], u)
				continue
			}
			fmt.Println(u)
		}
	}
}

func runSentences(ctx context.Context, cfg *config.Cfg, inputs []string, logger *slog.Logger) ([][]string, [][]float64, error) {
	det, release, err := cfg.SentenceDetector(logger)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	results, err := segment.DetectAll(ctx, det, inputs, cfg.Workers)
	if err != nil {
		return nil, nil, err
	}

	units := make([][]string, len(results))
	ps := make([][]float64, len(results))
	for i, res := range results {
		units[i] = res.Strings(inputs[i])
		// the first sentence has no boundary decision of its own
		ps[i] = append([]float64{1}, res.Probs...)
	}
	return units, ps, nil
}

func runTokens(ctx context.Context, cfg *config.Cfg, inputs []string, logger *slog.Logger) ([][]string, [][]float64, error) {
	tok, release, err := cfg.Tokenizer(logger)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	results, err := segment.TokenizeAll(ctx, tok, inputs, cfg.Workers)
	if err != nil {
		return nil, nil, err
	}

	units := make([][]string, len(results))
	ps := make([][]float64, len(results))
	for i, res := range results {
		units[i] = res.Strings(inputs[i])
		ps[i] = res.Probs
	}
	return units, ps, nil
}
