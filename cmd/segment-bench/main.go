package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jamesainslie/go-segment/internal/bench"
	"github.com/jamesainslie/go-segment/internal/config"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		modelPath  = flag.String("model", "", "Path to sentence model (.model maxent or .onnx)")
		models     = flag.String("models", "", "Comma-separated model paths for comparison")
		corpusDir  = flag.String("corpus", "testdata/ted", "Directory containing transcript files")
		tolerance  = flag.Int("tolerance", 3, "Byte tolerance for boundary matching")
		wp         = flag.Float64("wp", 1.0, "Precision weight")
		wr         = flag.Float64("wr", 1.0, "Recall weight")
		noAbbrev   = flag.Bool("no-abbrev", false, "Allow breaks after known abbreviations")
		perTalk    = flag.Bool("per-talk", false, "Print metrics for every talk")
		verbose    = flag.Bool("v", false, "Enable debug logging")
		showVer    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("segment-bench %s (%s, %s)\n", version, commit, date)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *modelPath != "" {
		cfg.SentModel = *modelPath
	}
	if *noAbbrev {
		cfg.Abbreviations = nil
	}
	if cfg.SentModel == "" && *models == "" {
		fmt.Fprintln(os.Stderr, "error: -model or -models required")
		flag.Usage()
		os.Exit(1)
	}

	talks, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d talks from %s\n\n", len(talks), *corpusDir)

	run := runner{
		cfg:   cfg,
		talks: talks,
		eval: bench.Config{
			Tolerance:       *tolerance,
			PrecisionWeight: *wp,
			RecallWeight:    *wr,
		},
		logger: logger,
	}

	ctx := context.Background()

	if *models != "" {
		run.compare(ctx, strings.Split(*models, ","))
		return
	}

	perTalkMetrics, total, err := run.evaluate(ctx, cfg.SentModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *perTalk {
		for i, m := range perTalkMetrics {
			fmt.Printf("%-30s P=%.2f R=%.2f F1=%.2f\n", talks[i].ID, m.Precision, m.Recall, m.F1)
		}
		fmt.Println()
	}
	printMetrics(total)
}

type runner struct {
	cfg    *config.Cfg
	talks  []*bench.Talk
	eval   bench.Config
	logger *slog.Logger
}

func (r runner) evaluate(ctx context.Context, modelPath string) ([]bench.Metrics, bench.Metrics, error) {
	cfg := *r.cfg
	cfg.SentModel = modelPath

	det, release, err := cfg.SentenceDetector(r.logger)
	if err != nil {
		return nil, bench.Metrics{}, err
	}
	defer release()

	return bench.EvaluateCorpus(ctx, det, r.talks, r.eval, cfg.Workers)
}

func (r runner) compare(ctx context.Context, modelPaths []string) {
	fmt.Printf("%-30s %-8s %-8s %-8s %-8s\n", "Model", "P", "R", "F1", "Weighted")
	for _, path := range modelPaths {
		path = strings.TrimSpace(path)
		_, m, err := r.evaluate(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%-30s %-8.2f %-8.2f %-8.2f %-8.2f\n", path, m.Precision, m.Recall, m.F1, m.WeightedScore)
	}
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}
