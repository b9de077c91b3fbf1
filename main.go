package main

import (
	"os"

	"github.com/hephbuild/lockbench/internal/cmd"
)

func main() {
	code := cmd.Execute()

	os.Exit(code)
}
