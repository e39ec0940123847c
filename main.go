package main

import (
	"fmt"
	"os"

	"treescope/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "treescope: %v\n", err)
		os.Exit(1)
	}
}
