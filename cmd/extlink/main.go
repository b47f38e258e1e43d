package main

import (
	"os"

	"github.com/MrSnakeDoc/extlink/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
