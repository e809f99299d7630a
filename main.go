package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"microblog/config"
	"microblog/database"
	"microblog/logger"
	"microblog/web"

	"github.com/op/go-logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG, cfg.LogFolder)
	case config.Info:
		logger.InitLogger(logging.INFO, cfg.LogFolder)
	case config.Notice:
		logger.InitLogger(logging.NOTICE, cfg.LogFolder)
	case config.Warn:
		logger.InitLogger(logging.WARNING, cfg.LogFolder)
	case config.Error:
		logger.InitLogger(logging.ERROR, cfg.LogFolder)
	default:
		log.Fatal("unknown log level:", cfg.GetLogLevel())
	}
	defer logger.CloseLogger()

	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(cfg, db)
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		if sig == syscall.SIGHUP {
			// Restart the web server in place, keeping the database open.
			if err := server.Stop(); err != nil {
				logger.Warning("stop server:", err)
			}
			server = web.NewServer(cfg, db)
			if err := server.Start(); err != nil {
				log.Fatal(err)
			}
			continue
		}

		if err := server.Stop(); err != nil {
			logger.Warning("stop server:", err)
		}
		logger.Info("microblog stopped")
		return
	}
}
