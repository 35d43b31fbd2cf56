package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	probe "summary/chain-probe"
)

type args struct {
	provider    string
	endpoint    string
	registry    *probe.Registry
	timeout     time.Duration
	retries     uint64
	interval    time.Duration
	metricsAddr string
	maxRPS      float64
}

func getArgs() (a args, err error) {
	timeoutSeconds := flag.Uint64("timeout", getEnvAsUint64("PROBE_TIMEOUT_SECONDS", 10), "per-request timeout in seconds")
	retries := flag.Uint64("retries", getEnvAsUint64("PROBE_RETRIES", probe.DefaultRetries), "retries on transport errors (0 disables)")
	intervalSeconds := flag.Uint64("interval", getEnvAsUint64("PROBE_INTERVAL_SECONDS", 0), "re-run every N seconds; 0 means one shot")
	metricsAddr := flag.String("metrics-addr", getEnv("PROBE_METRICS_ADDR", ""), "address to serve /metrics on in watch mode")
	maxRPS := flag.Float64("max-rps", getEnvAsFloat64("PROBE_MAX_RPS", 0), "cap on outbound requests per second (0 disables)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	a.registry, err = probe.ParseRegistry(getEnv("PROBE_CONTRACTS", ""))
	if err != nil {
		return a, fmt.Errorf("PROBE_CONTRACTS: %w", err)
	}

	a.provider = flag.Arg(0)
	a.endpoint = flag.Arg(1)
	a.timeout = time.Duration(*timeoutSeconds) * time.Second
	a.retries = *retries
	a.interval = time.Duration(*intervalSeconds) * time.Second
	a.metricsAddr = *metricsAddr
	a.maxRPS = *maxRPS

	return a, nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: chain-probe [flags] <provider> <endpoint>\n\n")
	fmt.Fprintf(flag.CommandLine.Output(), "providers: %v\n\nflags:\n", strings.Join(probe.NewRegistry().Providers(), ", "))
	flag.PrintDefaults()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueString := getEnv(key, "")
	if valueString == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueString, 10, 64)
	if err != nil {
		log.Printf("invalid %v=%q, using default %v", key, valueString, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	valueString := getEnv(key, "")
	if valueString == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueString, 64)
	if err != nil {
		log.Printf("invalid %v=%q, using default %v", key, valueString, defaultValue)
		return defaultValue
	}
	return value
}

func runOnce(ctx context.Context, p *probe.Prober, a args) int {
	outcome, err := p.Check(ctx, a.provider, a.endpoint)
	if err != nil {
		log.Printf("probe %v at %v failed: %v", a.provider, a.endpoint, err)
		return probe.ExitCode(err)
	}

	if outcome.ZeroLogs {
		log.Printf("probe %v at %v ok in %v: height %v, no logs in blocks %v to %v",
			a.provider, a.endpoint, outcome.Elapsed, outcome.Height, outcome.Window.FromBlock(), outcome.Window.ToBlock())
	} else {
		log.Printf("probe %v at %v ok in %v: height %v, %v logs in blocks %v to %v",
			a.provider, a.endpoint, outcome.Elapsed, outcome.Height, outcome.LogCount, outcome.Window.FromBlock(), outcome.Window.ToBlock())
	}
	return probe.ExitOK
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("serving metrics on %v", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server: %v", err)
	}
}

func main() {
	_ = godotenv.Load() // a .env file is optional

	a, err := getArgs()
	if err != nil {
		log.Fatal(err)
	}

	options := []probe.Option{
		probe.WithRegistry(a.registry),
		probe.WithTimeout(a.timeout),
		probe.WithRetries(a.retries),
	}
	if a.maxRPS > 0 {
		options = append(options, probe.WithRateLimit(a.maxRPS))
	}
	p := probe.New(options...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.interval <= 0 {
		code := runOnce(ctx, p, a)
		if code == probe.ExitOK {
			fmt.Println("ok")
		}
		os.Exit(code)
	}

	if a.metricsAddr != "" {
		go serveMetrics(a.metricsAddr)
	}

	log.Printf("watching %v at %v every %v", a.provider, a.endpoint, a.interval)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	runOnce(ctx, p, a)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, p, a)
		}
	}
}
