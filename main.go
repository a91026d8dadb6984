package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/config"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer"
	"github.com/envelope-zero/financisto2bluecoins/internal/migrate"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/envelope-zero/financisto2bluecoins/internal/router"
	"github.com/envelope-zero/financisto2bluecoins/internal/sink"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `Usage:
  financisto2bluecoins migrate [flags] <backup> [<output>]
  financisto2bluecoins serve [flags]
  financisto2bluecoins version

Run a command with --help to list its flags.`

var errUsage = errors.New("wrong number of arguments")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "migrate", "serve":
	case "version":
		fmt.Println(router.Version())
		return
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	flags := config.Flags(command)
	err := flags.Parse(os.Args[2:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Statements can be written to stdout, so the CLI logs to stderr
	logOutput := io.Writer(os.Stdout)
	if command == "migrate" {
		logOutput = os.Stderr
	}

	if err := setupLogging(cfg, logOutput); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch command {
	case "migrate":
		err = runMigrate(context.Background(), cfg, flags.Args())
	case "serve":
		err = serve(cfg)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, usage)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("financisto2bluecoins")
	}
}

// setupLogging configures gin and the global logger.
func setupLogging(cfg config.Config, output io.Writer) error {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: output}
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(output).With().Timestamp().Logger()

	return nil
}

// runMigrate migrates a backup and writes the statements.
func runMigrate(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}

	input := args[0]
	output := cfg.Output
	if len(args) == 2 {
		output = args[1]
	}

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	r, err := sink.Open(ctx, input)
	if err != nil {
		return err
	}
	defer r.Close()

	result, importErr := importer.Import(r, migrate.Options{Location: location})

	if cfg.Database != "" {
		if err := record(cfg, filepath.Base(input), result, importErr); err != nil {
			log.Error().Err(err).Str("database", cfg.Database).Msg("could not record migration")
		}
	}

	if importErr != nil {
		return importErr
	}

	w, err := sink.New(ctx, output)
	if err != nil {
		return err
	}

	err = bluecoins.Write(w, result.Statements)
	if err != nil {
		_ = w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	logSummary(result, output)
	return nil
}

// record stores the run in the run log database.
func record(cfg config.Config, filename string, result importer.Result, importErr error) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database), os.ModePerm); err != nil {
		return err
	}

	if err := models.Connect(cfg.Database); err != nil {
		return err
	}
	defer models.Close()

	migration := models.NewMigration(filename, cfg.Timezone, result, importErr)
	return models.DB.Create(&migration).Error
}

func logSummary(result importer.Result, output string) {
	summary := result.Summary

	log.Info().
		Str("output", output).
		Str("version", result.Version()).
		Str("checksum", result.Checksum).
		Int("statements", len(result.Statements)).
		Int("accounts", summary.Accounts).
		Int("parentCategories", summary.ParentCategories).
		Int("childCategories", summary.ChildCategories).
		Int("items", summary.Items).
		Interface("transactions", summary.Transactions).
		Msg("migration complete")

	for _, b := range summary.Balances {
		if b.Matches() {
			log.Debug().Int("account", b.AccountID).Str("name", b.Account).Str("balance", b.Symbol+b.Migrated.String()).Msg("balance")
		}
	}

	for _, s := range summary.SimilarItems {
		log.Info().Str("a", s.A).Str("b", s.B).Int("distance", s.Distance).Msg("similar item names, check for typos")
	}
}

// serve runs the API until it receives SIGINT or SIGTERM.
func serve(cfg config.Config) error {
	database := cfg.Database
	if database == "" {
		database = config.DefaultServeDatabase
	}

	// Create data directory
	if err := os.MkdirAll(filepath.Dir(database), os.ModePerm); err != nil {
		return err
	}

	if err := models.Connect(database); err != nil {
		return err
	}
	defer models.Close()

	url, err := cfg.URL()
	if err != nil {
		return err
	}

	opts := router.Options{
		AllowOrigins: cfg.AllowOrigins(),
		EnablePprof:  cfg.EnablePprof,
		Timezone:     cfg.Timezone,
	}

	r, teardown, err := router.Config(url, opts)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(r.Group("/"), opts)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("listen", cfg.Listen).Msg("starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down API server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
