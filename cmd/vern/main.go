package main

import (
	"os"

	"github.com/vernacular-lang/vernacular/cli"
)

func main() {
	os.Exit(cli.Execute())
}
