package main

import (
	"fmt"
	"os"

	"github.com/okdaichi/broadcastsim/internal/cli"
	"github.com/okdaichi/broadcastsim/internal/version"
)

var (
	// overridable command handlers for easier unit-testing
	runGenerate = cli.RunGenerate
	runRun      = cli.RunRun
	runServe    = cli.RunServe
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command logic and returns an exit code (0 = success).
// Keeping this function small makes unit-testing straightforward.
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	cmd := args[0]
	cmdArgs := args[1:]

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(cmdArgs)
	case "run":
		err = runRun(cmdArgs)
	case "serve":
		err = runServe(cmdArgs)
	case "version":
		fmt.Fprintln(os.Stdout, version.Full())
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: broadcastsim <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  generate   Generate a random regular topology and write it to a file")
	fmt.Fprintln(os.Stderr, "  run        Run broadcast experiments against a topology file")
	fmt.Fprintln(os.Stderr, "  serve      Start the experiment control-plane HTTP server")
	fmt.Fprintln(os.Stderr, "  version    Print version information")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config string   path to config file (serve only)")
	fmt.Fprintln(os.Stderr, "                   default: config.broadcastsim.yaml")
}
