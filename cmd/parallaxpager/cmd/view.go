package cmd

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/scenario"
	"github.com/go-drift/parallaxpager/pkg/memhost"
	"github.com/go-drift/parallaxpager/pkg/pageview"
)

func init() {
	RegisterCommand(&Command{
		Name:  "view",
		Short: "Explore a scenario interactively",
		Long: `Open an interactive terminal view of a scenario.

The scenario's pages and decorations are installed; its steps are not run.

Keys:
  left/h, right/l   select the previous or next page (animated)
  up/k, down/j      scroll the active page
  [ and ]           drag the pager without releasing
  space             release a drag and snap to the nearest page
  0                 scroll everything back to the origin
  q, ctrl+c         quit`,
		Usage: "parallaxpager view [scenario-file]",
		Run:   runView,
	})
}

const (
	viewScrollStep = 24
	viewDragStep   = 40
	viewLogLines   = 8
)

var (
	viewTitleStyle    = lipgloss.NewStyle().Bold(true)
	viewTabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#a6adc8"))
	viewActiveStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#f5c2e7"))
	viewSlotStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	viewMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	viewStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 2)
	viewBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	viewNotifyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	viewErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	viewCollapseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
)

func runView(args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	if len(cfg.Pages) == 0 {
		cfg.Pages = demoPages()
	}

	w := scenario.NewLive(cfg)
	defer w.Close()

	_, err = tea.NewProgram(newViewModel(w), tea.WithAltScreen()).Run()
	return err
}

func demoPages() []config.PageConfig {
	return []config.PageConfig{
		{Title: "Feed", ContentHeight: 2400},
		{Title: "Photos", ContentHeight: 1600},
		{Title: "About", Static: true},
	}
}

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(scenario.FrameDuration, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type viewModel struct {
	world  *scenario.World
	log    []string
	errs   int
	status string
	width  int
}

func newViewModel(w *scenario.World) *viewModel {
	m := &viewModel{world: w}
	m.collect()
	return m
}

func (m *viewModel) Init() tea.Cmd {
	return frameCmd()
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case frameMsg:
		m.world.Tick()
		m.collect()
		return m, frameCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.world.Coordinator()
	var step config.Step
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		index := c.SelectedIndex() - 1
		step = config.Step{Select: &index, Animated: true}
	case "right", "l":
		index := c.SelectedIndex() + 1
		step = config.Step{Select: &index, Animated: true}
	case "up", "k":
		dy := float64(-viewScrollStep)
		step = config.Step{Scroll: &dy}
	case "down", "j":
		dy := float64(viewScrollStep)
		step = config.Step{Scroll: &dy}
	case "[":
		dx := float64(-viewDragStep)
		step = config.Step{Drag: &dx}
	case "]":
		dx := float64(viewDragStep)
		step = config.Step{Drag: &dx}
	case " ":
		step = config.Step{Release: true}
	case "0":
		step = config.Step{Offset: []float64{0, 0}, Animated: true}
	default:
		return m, nil
	}

	m.status = scenario.Describe(step)
	if err := m.world.Apply(step); err != nil {
		m.status = err.Error()
	}
	m.collect()
	return m, nil
}

// collect moves new notifications and reports into the scrolling log.
func (m *viewModel) collect() {
	for _, n := range m.world.TakeNotifications() {
		m.log = append(m.log, viewNotifyStyle.Render(n))
	}
	errs := m.world.Errors()
	for _, err := range errs[m.errs:] {
		m.log = append(m.log, viewErrorStyle.Render(err.Error()))
	}
	m.errs = len(errs)
	if len(m.log) > viewLogLines {
		m.log = m.log[len(m.log)-viewLogLines:]
	}
}

func (m *viewModel) View() string {
	c := m.world.Coordinator()
	cfg := m.world.Config()

	var b strings.Builder
	b.WriteString(viewTitleStyle.Render(fmt.Sprintf("parallaxpager: %s", cfg.Name)))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs(c))
	b.WriteString("\n\n")
	b.WriteString(viewBoxStyle.Render(m.renderRegion(c)))
	b.WriteString("\n\n")

	b.WriteString(viewMutedStyle.Render("notifications"))
	b.WriteString("\n")
	if len(m.log) == 0 {
		b.WriteString(viewMutedStyle.Render("  (none yet)"))
		b.WriteString("\n")
	}
	for _, line := range m.log {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	status := scenario.Summary(m.world)
	if m.status != "" {
		status = m.status + "  |  " + status
	}
	b.WriteString(viewStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(viewMutedStyle.Render("h/l pages  j/k scroll  [ ] drag  space release  0 origin  q quit"))
	return b.String()
}

func (m *viewModel) renderTabs(c *pageview.Coordinator) string {
	pages := m.world.Pages()
	tabs := make([]string, len(pages))
	visible := c.Pager().VisibleRange()
	for i, page := range pages {
		label := page.Title
		if visible.Contains(i) && i != c.SelectedIndex() {
			label += "*"
		}
		if i == c.SelectedIndex() {
			tabs[i] = viewActiveStyle.Render(label)
		} else {
			tabs[i] = viewTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *viewModel) renderRegion(c *pageview.Coordinator) string {
	p := c.Parallax()
	var lines []string
	for _, slot := range []pageview.Slot{pageview.SlotHeader, pageview.SlotContent, pageview.SlotFooter} {
		name := "-"
		if view := p.Decoration(slot); view != nil {
			name = memhost.NameOf(view)
		}
		lines = append(lines, viewSlotStyle.Render(fmt.Sprintf("%-8s %-12s %6.1f", slot.String(), name, p.SlotHeight(slot))))
	}

	limit := p.ContentSize().Height
	offset := p.ContentOffset()
	lines = append(lines, "", viewCollapseStyle.Render("collapse "+collapseBar(offset, limit, m.barWidth())))

	host := "pager surface"
	if item := p.ActiveItem(); item != nil && item.ScrollSurface() != nil {
		host = fmt.Sprintf("%s (inset %g)", item.Controller(), item.ParallaxInset())
	}
	lines = append(lines, viewMutedStyle.Render("hosted in "+host))
	return strings.Join(lines, "\n")
}

func (m *viewModel) barWidth() int {
	if m.width == 0 {
		return 24
	}
	return min(max(m.width-40, 10), 48)
}

// collapseBar renders how far the content slot has collapsed.
func collapseBar(offset, limit float64, width int) string {
	if limit <= 0 {
		return "[" + strings.Repeat(" ", width) + "] n/a"
	}
	filled := int(float64(width) * min(max(offset, 0), limit) / limit)
	return fmt.Sprintf("[%s%s] %.0f/%.0f", strings.Repeat("#", filled), strings.Repeat(".", width-filled), offset, limit)
}
