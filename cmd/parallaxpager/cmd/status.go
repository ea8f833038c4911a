package cmd

import (
	"fmt"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show the resolved scenario",
		Long: `Show the scenario the other commands would use.

Prints the source file, the frame size, the options, every page and
decoration, and the coordinator state after the pages are installed.`,
		Usage: "parallaxpager status [scenario-file]",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	source := cfg.Source
	if source == "" {
		source = "(none, defaults only)"
	}
	fmt.Printf("Scenario: %s\n", cfg.Name)
	fmt.Printf("Source:   %s\n", source)
	if cfg.ModulePath != "" {
		fmt.Printf("Module:   %s\n", cfg.ModulePath)
	}
	fmt.Printf("Frame:    %gx%g\n", cfg.Width, cfg.Height)
	fmt.Printf("Options:  heightPrecision=%g clipsContent=%t fixedOffsetOnInsetChange=%t\n",
		cfg.Options.HeightPrecision, cfg.Options.ClipsContent, cfg.Options.FixedOffsetOnInsetChange)
	fmt.Println()

	fmt.Println("Pages:")
	if len(cfg.Pages) == 0 {
		fmt.Println("  (none)")
	}
	for i, page := range cfg.Pages {
		kind := fmt.Sprintf("scrolls %g", page.ContentHeight)
		if page.Static {
			kind = "static"
		}
		fmt.Printf("  %d  %-16s %s\n", i, page.Title, kind)
	}
	fmt.Println()

	fmt.Println("Decorations:")
	for _, d := range []struct {
		slot string
		desc string
	}{
		{"header", describeView(cfg.Decorations.Header)},
		{"content", describeView(cfg.Decorations.Content)},
		{"footer", describeView(cfg.Decorations.Footer)},
	} {
		fmt.Printf("  %-8s %s\n", d.slot+":", d.desc)
	}
	fmt.Println()

	w := scenario.New(cfg)
	defer w.Close()
	fmt.Println(scenario.Summary(w))
	fmt.Printf("Steps:    %d\n", len(cfg.Steps))
	return nil
}

func describeView(v *config.ViewConfig) string {
	switch {
	case v == nil:
		return "-"
	case v.Text != "":
		return fmt.Sprintf("%s label %q", v.Name, v.Text)
	default:
		return fmt.Sprintf("%s height %g", v.Name, v.Height)
	}
}
