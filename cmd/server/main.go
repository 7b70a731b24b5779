package main

import (
	"fmt"

	_ "github.com/amirasaad/bankoffice/docs"
	"github.com/amirasaad/bankoffice/infra/initializer"
	"github.com/amirasaad/bankoffice/pkg/app"
	"github.com/amirasaad/bankoffice/pkg/config"
	"github.com/amirasaad/bankoffice/webapi"
	log "github.com/charmbracelet/log"
)

// @title Bank Office API
// @version 1.0.0
// @description Back-office API for clients, banking accounts and their transactions
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	addr := listenAddr(cfg.Server)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"db_driver", cfg.DB.Driver,
	)

	return fiberApp.Listen(addr)
}

func listenAddr(s *config.Server) string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
