package main

import (
	"log"
	"os"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/cp25sy5-modjot/ocr-service/internal/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp keeps the server flags on the app only; serve reads them through
// its parent context, so they go before the command name.
func newApp() *cli.App {
	return &cli.App{
		Name:      "ocr-service",
		Usage:     "a grpc service that turns images into text lines",
		UsageText: "ocr-service [server flags] [serve]\nocr-service recognize [flags] FILE...",
		Version:   versioninfo.Short(),
		Flags:     config.ServeFlags(),
		Action:    serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the grpc server (default)",
				Action: serve,
			},
			recognizeCommand,
		},
	}
}
