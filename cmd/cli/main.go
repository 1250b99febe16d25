package main

import (
	"log"
	"os"

	"github.com/untpkit/resolver/internal/cli"
)

func main() {

	app := cli.NewApp()
	if err := app.Run(os.Args[1:]); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
