package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-team-tasks/internal/config"
)

func (a *App) MustReadEnv() {
	a.MustReadConfig(config.NewEnvReader())
}

func (a *App) MustReadConfig(reader config.Reader) {
	cfg, err := reader.Read()
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to read config")
		panic(err)
	}
	a.logger.Info().
		Str("env", cfg.Env).
		Msg("read config")

	a.cfg = *cfg
}
