// cmd/gpuzip/main.go
package main

import (
	cmd "github.com/simani23/gpu-zip/internal/cli"
)

// executeCmd is swapped out in tests.
var executeCmd = cmd.Execute

// main starts the gpuzip CLI by delegating to the cobra root command.
// Configuration, logging and exit codes are handled by the command tree.
func main() {
	executeCmd()
}
