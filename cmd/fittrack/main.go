package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fittrackapp/fittrack/internal/auth"
	"github.com/fittrackapp/fittrack/internal/client"
	"github.com/fittrackapp/fittrack/internal/config"
	"github.com/fittrackapp/fittrack/internal/goals"
	"github.com/fittrackapp/fittrack/internal/logging"
	"github.com/fittrackapp/fittrack/internal/session"
	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/users"
	"github.com/fittrackapp/fittrack/internal/workouts"
	"github.com/fittrackapp/fittrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Usage = func() {
		printUsage(os.Stderr)
	}
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	// make sure the logs dir is there before lumberjack tries to write to it
	if cfg.LogsPath != "" {
		logsDir := filepath.Dir(cfg.LogsPath)
		dirExists, err := pkg.PathExists(logsDir, true)
		if err != nil {
			panic(fmt.Sprintf("check logs dir: %s", err))
		}
		if !dirExists {
			if err := os.MkdirAll(logsDir, 0o755); err != nil {
				panic(fmt.Sprintf("create logs dir: %s", err))
			}
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: false,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     sentryDSN,
		ClientName:    "fittrack-cli",
	})

	log.Debugf("running in [%s] environment against [%s]", cfg.Environment, cfg.APIBaseURL)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fittrack", "client", registry)

	sessionStore := session.NewStore(cfg.CredentialsPath)
	if err := sessionStore.Load(); err != nil {
		log.Errorf("failed to load stored credential: %s", err)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	if cfg.RequestTimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	apiClient := client.NewClient(cfg.APIBaseURL, httpClient, sessionStore, metricsManager)
	usersService := users.NewService(apiClient, cfg.SnapshotCacheTTLSeconds, metricsManager)

	a := &app{
		auth:     auth.NewStore(auth.NewService(apiClient), usersService, sessionStore, metricsManager),
		workouts: workouts.NewStore(workouts.NewService(apiClient), metricsManager),
		goals:    goals.NewStore(goals.NewService(apiClient), metricsManager),
		users:    usersService,
		registry: registry,
		out:      os.Stdout,
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", client.ErrorMessage(err))
		os.Exit(1)
	}
}

func printUsage(out *os.File) {
	fmt.Fprintln(out, "usage: fittrack [-env <env>] [-config <path>] <command> [args]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  register               create an account and log in")
	fmt.Fprintln(out, "  login                  log in and store the credential")
	fmt.Fprintln(out, "  logout                 drop the stored credential")
	fmt.Fprintln(out, "  profile [update]       show or change the profile")
	fmt.Fprintln(out, "  workouts <subcommand>  list | add | update | rm")
	fmt.Fprintln(out, "  goals <subcommand>     list | add | update | rm | complete")
	fmt.Fprintln(out, "  dashboard              weekly activity, goals and aggregates")
	fmt.Fprintln(out, "  stats                  backend aggregate snapshot")
	fmt.Fprintln(out, "  feed                   recent activity of followed users")
	fmt.Fprintln(out, "  follow | unfollow      follow or unfollow a user by id")
	fmt.Fprintln(out, "  metrics                dump the collected client metrics")
}
