package main

import (
	"fmt"
	"log"
	"os"

	"github.com/opattison/figureimg/internal/www"
	"github.com/opattison/figureimg/internal/www/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	server, err := www.New(cfg, os.DirFS(cfg.ContentDir))
	if err != nil {
		log.Fatal(fmt.Errorf("error creating server: %w", err))
	}

	log.Fatal(server.Start())
}
