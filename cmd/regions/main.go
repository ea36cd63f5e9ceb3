// Command regions inspects the region data and the upstream feeds from the
// command line.
//
// Usage:
//
//	go run ./cmd/regions resolve 11.87 46.35 --unique
//	go run ./cmd/regions tree --available
//	go run ./cmd/regions bulletin IT-34-BL-01
//	go run ./cmd/regions advisory
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
