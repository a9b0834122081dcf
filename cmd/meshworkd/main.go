package main

import (
	"os"

	"github.com/meshwork-social/meshwork/meshworkservice"
)

func main() {
	if err := meshworkservice.Run(); err != nil {
		os.Exit(1)
	}
}
