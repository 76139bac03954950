package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	client "github.com/cp25sy5-modjot/ocr-service/internal/client/ocr"
	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/logger"
)

var recognizeCommand = &cli.Command{
	Name:      "recognize",
	Usage:     "send images to a running server and print the recognized lines",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			EnvVars: []string{"OCR_ADDR"},
			Value:   "localhost:50051",
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: "language hint, empty uses the server default",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per attempt timeout",
			Value: time.Minute,
		},
		&cli.IntFlag{
			Name:  "retries",
			Value: 3,
		},
		&cli.BoolFlag{
			Name: "debug",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.Exit("at least one image file is required", 2)
		}
		if c.Int("retries") < 0 {
			return cli.Exit(fmt.Sprintf("retries must be >= 0, got %d", c.Int("retries")), 2)
		}
		log := logger.New(logger.Options{Debug: c.Bool("debug"), Format: "console", Output: os.Stderr})

		cl, err := client.New(c.Context, log, c.String("addr"), c.Duration("timeout"), c.Int("retries"))
		if err != nil {
			return err
		}
		defer cl.Close()

		for _, path := range c.Args().Slice() {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			lines, err := cl.Recognize(c.Context, data, c.String("lang"))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if c.NArg() > 1 {
				fmt.Fprintf(c.App.Writer, "==> %s <==\n", path)
			}
			for _, l := range lines {
				fmt.Fprintln(c.App.Writer, l)
			}
		}
		return nil
	},
}
