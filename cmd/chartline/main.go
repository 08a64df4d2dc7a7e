package main

import (
	"os"

	"github.com/aevon-lab/chartline/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
