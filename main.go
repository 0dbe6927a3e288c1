package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"kiro/bench"
	"kiro/config"
	"kiro/editor"

	"go.uber.org/zap"
)

type ledger struct {
	Tool    string         `json:"tool"`
	Benches []bench.Result `json:"benches"`
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func newLogger(cfg *config.Config, dev bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func selectWorkloads(all []bench.Workload, names string) ([]bench.Workload, error) {
	if names == "" {
		return all, nil
	}
	var out []bench.Workload
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		found := false
		for _, w := range all {
			if w.Name == name {
				out = append(out, w)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown workload %q", name)
		}
	}
	return out, nil
}

func main() {
	var (
		iterations = flag.Int("n", 10, "runs per workload")
		source     = flag.String("file", "", "source file for the source workloads (default: generated Go code)")
		run        = flag.String("run", "", "comma-separated workload names to run")
		settings   = flag.String("config", "", "settings file (.json, .toml, .yaml)")
		dev        = flag.Bool("dev", false, "human-readable logs")
	)
	flag.Parse()

	cfg, err := config.Load()
	if *settings != "" {
		cfg, err = config.LoadFile(*settings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cfg = config.Default()
	}

	log, err := newLogger(cfg, *dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := []editor.Option{editor.WithConfig(cfg)}
	var lines []string
	if *source != "" {
		lines, err = readLines(*source)
		if err != nil {
			log.Fatal("read source", zap.String("path", *source), zap.Error(err))
		}
		opts = append(opts, editor.WithTabSize(cfg.TabSizeFor(*source)))
	}

	workloads, err := selectWorkloads(bench.Defaults(lines, *source), *run)
	if err != nil {
		log.Fatal("select workloads", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := bench.RunAll(ctx, workloads, *iterations, log, opts...)
	if err != nil {
		log.Fatal("benchmark", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ledger{Tool: "go", Benches: results}); err != nil {
		log.Fatal("write ledger", zap.Error(err))
	}
}
