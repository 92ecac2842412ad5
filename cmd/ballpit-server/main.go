package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ballpit/config"
	"ballpit/network"
	"ballpit/session"
)

func main() {
	cfgPath := flag.String("config", "ballpit.yaml", "optional YAML settings file")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		log.Fatal(err)
	}
	settings, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	sessions := session.NewManager(settings.SessionOptions())
	defer sessions.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := network.NewServer(sessions, settings.SpriteDir)
	if err := srv.ListenAndServe(ctx, settings.Addr); err != nil {
		log.Fatal(err)
	}
	log.Println("shut down")
}
