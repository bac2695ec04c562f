package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"tessera/internal/buildinfo"
	"tessera/internal/compose"
	tessera "tessera/internal/config"
	"tessera/internal/library"
	"tessera/internal/logging"
	"tessera/internal/server"
	"tessera/internal/setup"
	"tessera/internal/shutdown"
	"tessera/internal/telemetry"
	tileDb "tessera/internal/tile/database"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context, cancel func()) error {
	config := tessera.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(context.Background())

	shutdownCh := make(chan error, 1)
	palette, err := env.ProvidePalette()(shutdownCh)
	if err != nil {
		return fmt.Errorf("palette provider function error: %w", err)
	}
	if err := palette.Run(ctx); err != nil {
		return fmt.Errorf("palette.Run: %w", err)
	}

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	composeHandler, err := compose.NewHandler(&config.Compose, palette)
	if err != nil {
		return fmt.Errorf("compose.NewHandler: %w", err)
	}
	mux.Handle("/mosaic", composeHandler)

	libraryHandler, err := library.NewHandler(&config.Library, tileDb.New(env.Database()))
	if err != nil {
		return fmt.Errorf("library.NewHandler: %w", err)
	}
	mux.Handle("/palette", libraryHandler)

	exporter, err := telemetry.NewExporter()
	if err != nil {
		return fmt.Errorf("telemetry.NewExporter: %w", err)
	}
	mux.Handle("/metrics", exporter)
	mux.Handle("/health", server.HandleHealth(ctx))

	go func() {
		if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
			cancel()
		}
	}()

	go func() {
		if err := http.ListenAndServe("0.0.0.0:8080", nil); err != nil {
			cancel()
		}
	}()

	return <-shutdownCh
}
