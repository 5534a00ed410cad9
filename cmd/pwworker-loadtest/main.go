// Command pwworker-loadtest drives hash and verify round trips through a
// worker pool and reports latency percentiles, pool counters and the
// Prometheus metrics the pool produced.
//
// Settings come from the environment (a .env file in the working directory
// is loaded first) and can be overridden with flags:
//
//	pwworker-loadtest -algorithm argon2id -threads 4 -concurrency 64 -ops 500
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/metrics/prometheus"
	"github.com/hasbyte1/password-worker/worker"
)

// runner builds a pool for one algorithm, drives it and returns the result.
type runner func(ctx context.Context, env runEnv) (phaseStats, worker.Stats, error)

// runners is filled by the algorithm files, depending on build tags.
var runners = map[string]runner{}

type runEnv struct {
	pool        worker.Config
	opts        []worker.Option
	concurrency int
	ops         int
}

func main() {
	var (
		algorithm   = flag.String("algorithm", "bcrypt", "hashing algorithm: "+strings.Join(algorithms(), " | "))
		threads     = flag.Int("threads", 0, "pool goroutines; 0 uses PWWORKER_THREADS or NumCPU-1")
		queue       = flag.Int("queue", 0, "queue capacity; 0 uses PWWORKER_QUEUE_SIZE or the default")
		concurrency = flag.Int("concurrency", 32, "number of concurrent callers")
		ops         = flag.Int("ops", 256, "hash+verify round trips")
		logLevel    = flag.String("log-level", envOr("PWWORKER_LOG_LEVEL", "info"), "debug | info | warn | error")
		logFormat   = flag.String("log-format", envOr("PWWORKER_LOG_FORMAT", "text"), "text | json")
		showMetrics = flag.Bool("metrics", true, "print the Prometheus registry after the run")
	)
	flag.Parse()

	if *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency and ops must be > 0")
		os.Exit(2)
	}
	run, ok := runners[*algorithm]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown or disabled algorithm %q (have %s)\n", *algorithm, strings.Join(algorithms(), ", "))
		os.Exit(2)
	}

	log := newLogger(os.Stderr, *logLevel, *logFormat)

	poolCfg, err := worker.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *threads > 0 {
		poolCfg.Threads = *threads
	}
	if *queue > 0 {
		poolCfg.QueueSize = *queue
	}

	reg := prom.NewRegistry()
	obs := prometheus.NewObserver("pwworker", "")
	obs.MustRegister(reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting load test",
		"algorithm", *algorithm,
		"threads", poolCfg.Threads,
		"overflow", poolCfg.Overflow.String(),
		"concurrency", *concurrency,
		"ops", *ops,
		"drivers", hashing.Drivers())

	phase, stats, err := run(ctx, runEnv{
		pool:        poolCfg,
		opts:        []worker.Option{worker.WithLogger(log), worker.WithObserver(obs)},
		concurrency: *concurrency,
		ops:         *ops,
	})
	if err != nil {
		log.Error("load test failed", "err", err)
		os.Exit(1)
	}

	fmt.Println("---- results ----")
	printStats(os.Stdout, *algorithm, phase)
	fmt.Printf("pool %s: threads=%d queue=%d submitted=%d completed=%d failed=%d panicked=%d rejected=%d abandoned=%d\n",
		stats.PoolID, stats.Threads, stats.QueueCapacity,
		stats.Submitted, stats.Completed, stats.Failed, stats.Panicked, stats.Rejected, stats.Abandoned)

	if *showMetrics {
		fmt.Println("---- metrics ----")
		mfs, err := reg.Gather()
		if err != nil {
			log.Error("gather metrics", "err", err)
			os.Exit(1)
		}
		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
				log.Error("write metrics", "err", err)
				os.Exit(1)
			}
		}
	}
}

func algorithms() []string {
	names := make([]string, 0, len(runners))
	for name := range runners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
