package main

import (
	"fmt"

	"go.uber.org/zap"

	"precon-tracker/internal/config"
	"precon-tracker/internal/database"
	"precon-tracker/internal/server"
	"precon-tracker/internal/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	database.Init(cfg.DBDSN)

	sessions, err := session.NewStore(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("session store init failed", zap.Error(err))
	}

	r := server.NewRouter(cfg, sessions)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
