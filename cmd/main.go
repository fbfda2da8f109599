package main

import (
	"os"

	"github.com/adanyl0v/go-team-tasks/internal/app"
	"github.com/adanyl0v/go-team-tasks/internal/config"
)

func main() {
	a := app.New()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		a.MustReadConfig(config.NewFileReader(path))
	} else {
		a.MustReadEnv()
	}
	a.MustInitApplicationLogger()

	a.MustConnectPostgres()
	defer a.DisconnectPostgres()
	a.MustMigratePostgres()

	a.MustListenAndServeHTTP()
}
