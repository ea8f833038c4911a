package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run a scenario and print its notification log",
		Long: `Run a scripted scenario against the in-memory host.

Each step is applied in order and the coordinator notifications it caused
are printed below it. Animations run on a fake clock, so the output is the
same on every run.

With --snapshot, the final view tree and coordinator state are written to
FILE as YAML.`,
		Usage: "parallaxpager run [scenario-file] [--snapshot FILE]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	var snapshot string
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--snapshot":
			if i+1 >= len(args) {
				return fmt.Errorf("--snapshot requires a file path")
			}
			snapshot = args[i+1]
			i++
		case strings.HasPrefix(arg, "--snapshot="):
			snapshot = strings.TrimPrefix(arg, "--snapshot=")
		default:
			rest = append(rest, arg)
		}
	}

	cfg, err := loadScenario(rest)
	if err != nil {
		return err
	}
	if len(cfg.Pages) == 0 && cfg.Source == "" {
		return fmt.Errorf("no scenario found (expected parallaxpager.yaml or parallaxpager.toml)")
	}

	w := scenario.New(cfg)
	defer w.Close()
	if err := scenario.Play(w, os.Stdout, verbose); err != nil {
		return err
	}
	if snapshot == "" {
		return nil
	}
	if err := w.Snapshot().WriteFile(snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Printf("snapshot written to %s\n", snapshot)
	return nil
}
