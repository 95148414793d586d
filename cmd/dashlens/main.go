package main

import (
	"context"
	"log"
	"os"

	"github.com/dashlens/dashlens/internal/app"
	"github.com/dashlens/dashlens/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])

	a, err := app.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
