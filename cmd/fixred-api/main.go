// Command fixred-api serves link fixing over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fixred/internal/platform/config"
	"fixred/internal/platform/logger"
	phttp "fixred/internal/platform/net/http"

	"fixred/internal/services/api"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	opt := logger.FromEnv()
	opt.Service = "fixred-api"
	opt.StaticFields = map[string]string{"run_id": uuid.NewString()}
	logger.Init(opt)
	l := logger.Get()

	root := config.New()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(root.Prefix("CORE_API_"))

	if err := api.Mount(srv.Router(), api.Options{Config: root, Logger: l}); err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
