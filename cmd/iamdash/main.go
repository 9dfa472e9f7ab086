package main

import (
	"fmt"
	"os"
)

// version is stamped at release time via ldflags; default stays dev for local builds.
var version = "0.0.0-dev"

const (
	exitOK              = 0
	exitInvalidInput    = 2
	exitNotFound        = 3
	exitMalformed       = 4
	exitInternalFailure = 70
)

func main() {
	os.Exit(run(os.Args))
}

func run(arguments []string) int {
	if len(arguments) < 2 {
		printUsage()
		return exitOK
	}
	switch arguments[1] {
	case "overview":
		return runOverview(arguments[2:])
	case "inspect":
		return runInspect(arguments[2:])
	case "dashboard":
		return runDashboard(arguments[2:])
	case "version", "--version":
		fmt.Println("iamdash", version)
		return exitOK
	case "help", "--help", "-h":
		printUsage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", arguments[1])
		printUsage()
		return exitInvalidInput
	}
}

func printUsage() {
	fmt.Println(`iamdash renders precomputed IAM policy verification runs.

Usage:
  iamdash overview  --from <dir> [--json]
  iamdash inspect   --from <dir> --iteration <n> [--json]
  iamdash dashboard --from <dir> [--json]
  iamdash version`)
}
