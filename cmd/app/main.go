package main

import (
	"context"
	"errors"
	"os"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		log.Fatalf("textile: %v", err)
	}
}
