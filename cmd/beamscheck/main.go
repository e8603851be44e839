// beamscheck - Web push / Pusher Beams notification tester
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/beamscheck

package main

import (
	"os"

	"github.com/ariel-frischer/beamscheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
