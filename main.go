package main

import (
	"os"

	"github.com/fieldcms/fieldcms/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
