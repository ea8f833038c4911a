// Package cmd implements the parallaxpager CLI commands.
//
// The root command dispatches to subcommands (run, view, status).
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "parallaxpager",
	Short: "parallaxpager - two-axis pager with a parallax header",
	Long: `parallaxpager drives the paging coordinator on an in-memory host.

Scenarios are read from parallaxpager.yaml or parallaxpager.toml in the
project root, or from the file passed to a command.

Use "parallaxpager <command> --help" for more information about a command.`,
	Usage: "parallaxpager <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// verbose is set by the global --verbose flag.
var verbose bool

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("parallaxpager version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			verbose = true
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs
	errors.SetHandler(&errors.LogHandler{Verbose: verbose})

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --verbose            Include error kinds and stack traces in reports")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  parallaxpager run                    Run ./parallaxpager.yaml")
	fmt.Println("  parallaxpager run demo.toml          Run a TOML scenario")
	fmt.Println("  parallaxpager view                   Explore the scenario interactively")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

// loadScenario resolves the scenario named by args, or the project's
// default scenario file when args is empty.
func loadScenario(args []string) (*config.Resolved, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one scenario file, got %d", len(args))
	}

	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return nil, err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		resolved, err := config.Resolve(cfg, projectRoot(filepath.Dir(path)))
		if err != nil {
			return nil, err
		}
		resolved.Source = path
		return resolved, nil
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		if root, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	cfg, source, err := config.LoadOptional(root)
	if err != nil {
		return nil, err
	}
	resolved, err := config.Resolve(cfg, root)
	if err != nil {
		return nil, err
	}
	resolved.Source = source
	return resolved, nil
}

// projectRoot returns the nearest directory at or above dir holding a
// go.mod, or dir itself.
func projectRoot(dir string) string {
	for d := dir; ; {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}
