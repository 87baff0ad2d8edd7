package main

import (
	"os"

	"github.com/collect5/collect5/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
