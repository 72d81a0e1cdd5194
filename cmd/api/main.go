package main

import (
	"os"

	"github.com/yigit/estudiantes/internal/pkg/logger"
	"github.com/yigit/estudiantes/internal/server"
)

// @title Estudiantes API
// @version 1.0
// @description Student records: HTML forms and a JSON API over the estudiantes table

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Details were logged by the bootstrap step that failed.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
