package main

import (
	"fmt"
	"os"

	"github.com/mwork/booker-qa/internal/cli"
	"github.com/mwork/booker-qa/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
