package main

import (
	"os"

	"github.com/ganot/activitylog/cmd/activityctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
