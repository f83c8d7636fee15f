// Command paramd serves the request parameter resolver over HTTP.
//
// GET or POST /params/{kind}/{key} resolves key from the query string or the
// JSON body as kind and reports the outcome. GET or POST /search binds a
// search request from the same sources.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/reqparam/param"
	"github.com/dmitrymomot/reqparam/pkg/config"
	"github.com/dmitrymomot/reqparam/pkg/httpserver"
	"github.com/dmitrymomot/reqparam/pkg/logger"
	"github.com/dmitrymomot/reqparam/pkg/requestid"
)

type appConfig struct {
	Name  string `env:"APP_NAME" envDefault:"paramd"`
	Env   string `env:"APP_ENV" envDefault:"development"`
	HTTP  httpserver.Config
	Param param.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, newRouter(log, cfg.Param)); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
	log.Info("bye", slog.String("service", cfg.Name))
}
