package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sourcecd/warehouse/internal/config"
	"github.com/sourcecd/warehouse/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.Config

	config.SetCmdlineFlags(&cfg)
	config.SetEnvironmentVariables(&cfg)

	if err := server.Run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
