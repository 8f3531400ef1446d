package main

import (
	"os"

	"github.com/leftmike/colexpr/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
