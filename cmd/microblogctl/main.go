package main

import (
	"os"

	"microblog/cmd/microblogctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
