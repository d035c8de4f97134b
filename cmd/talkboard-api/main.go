package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/logger"
	"github.com/talkboard/talkboard/internal/router"
	"github.com/talkboard/talkboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "err", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	logger.Log.Info("server started", "port", httpPort)
	if err := http.ListenAndServe(":"+httpPort, r); err != nil {
		logger.Log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
