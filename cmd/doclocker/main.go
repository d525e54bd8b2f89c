package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/doclocker/internal/app"
	"github.com/dmitrijs2005/doclocker/internal/buildinfo"
	"github.com/dmitrijs2005/doclocker/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.New(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
