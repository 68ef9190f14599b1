package main

import (
	"os"

	"github.com/trezcool/alama/core"
)

func main() {
	conf := core.NewConfig()
	if err := newRootCommand(conf).Execute(); err != nil {
		os.Exit(1)
	}
}
