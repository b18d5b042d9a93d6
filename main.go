package main

import (
	"log"

	"github.com/arvane/photodex/cmd"
	"github.com/arvane/photodex/config"
)

func main() {
	log.Printf("photodex %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
