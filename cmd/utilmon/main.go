package main

import (
	"os"

	"github.com/Dicklesworthstone/utilmon/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
