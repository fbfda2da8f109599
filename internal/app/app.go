package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-team-tasks/internal/config"
)

// App owns the process-wide dependencies. The Must* methods are meant
// to be called in order from main and panic on failure.
type App struct {
	logger       zerolog.Logger
	cfg          config.Config
	postgresPool *pgxpool.Pool
}

func New() *App {
	return &App{
		logger: newDefaultLogger(),
	}
}
