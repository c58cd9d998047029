package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/siddheshp/ems-api-okta/internal/app"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
