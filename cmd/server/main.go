package main

import (
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/yulcat/help-rota/internal/config"
	"github.com/yulcat/help-rota/internal/serverapp"
)

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load("helprota_config.yml")
	if err != nil {
		bootLog.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg.Env)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.DataDir,
		StaticDir:     cfg.StaticDir,
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build server")
	}

	logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		logger.Fatal().Err(err).Msg("serve")
	}
}

func newLogger(env string) zerolog.Logger {
	if env == config.EnvLocal {
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		return zerolog.New(cw).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
