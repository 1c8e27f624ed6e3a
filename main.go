package main

import (
	"os"

	"github.com/gestio-app/gestio/internal/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.InfoLevel)
	if level := os.Getenv("GESTIO_LOG_LEVEL"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.Fatalf("invalid GESTIO_LOG_LEVEL %q: %v", level, err)
		}
		log.SetLevel(parsed)
	}
}

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
