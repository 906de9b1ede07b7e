package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/buttongroup/internal/app"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Apply presses and print the resulting group states",
	Long: `Mount the layout, press the given buttons through the event bus and
print every group with its pressed button highlighted.

Presses are applied in order:

  buttongroup show -l layout.toml --press size=l --press color=red`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var (
	showPresses []string
	showStats   bool
)

func init() {
	showCmd.Flags().StringArrayVarP(&showPresses, "press", "p", nil, "press a button, as group=value (repeatable)")
	showCmd.Flags().BoolVar(&showStats, "stats", false, "print bus and loop counters")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	presses, err := parsePresses(showPresses)
	if err != nil {
		return err
	}

	application, err := newApplication(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer application.Unmount()

	// Deliver the initial broadcasts before pressing anything.
	application.Loop().Flush()

	for _, p := range presses {
		if err := application.Press(cmd.Context(), p.group, p.value); err != nil {
			if errors.Is(err, app.ErrUnknownGroup) || errors.Is(err, app.ErrUnknownButton) {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		application.Loop().Flush()
	}

	styles := newShowStyles(lipgloss.NewRenderer(cmd.OutOrStdout()))
	fmt.Fprintln(cmd.OutOrStdout(), styles.render(application.Mounts()))
	if showStats {
		fmt.Fprintln(cmd.OutOrStdout(), styles.stats.Render(application.Stats().String()))
	}
	return nil
}

type press struct {
	group string
	value string
}

func parsePresses(raw []string) ([]press, error) {
	presses := make([]press, 0, len(raw))
	for _, r := range raw {
		group, value, ok := strings.Cut(r, "=")
		if !ok || group == "" {
			return nil, fmt.Errorf("invalid press %q: want group=value", r)
		}
		presses = append(presses, press{group: group, value: value})
	}
	return presses, nil
}

type showStyles struct {
	title    lipgloss.Style
	button   lipgloss.Style
	pressed  lipgloss.Style
	disabled lipgloss.Style
	stats    lipgloss.Style
}

func newShowStyles(r *lipgloss.Renderer) showStyles {
	return showStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		button:   r.NewStyle(),
		pressed:  r.NewStyle().Reverse(true).Bold(true),
		disabled: r.NewStyle().Faint(true).Strikethrough(true),
		stats:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// render draws one line per group. The pressed button is bracketed so the
// selection stays visible without color.
func (s showStyles) render(mounts []*app.Mount) string {
	lines := make([]string, 0, len(mounts))
	for _, m := range mounts {
		name := m.Group.Name()
		if name == "" {
			name = "(unnamed)"
		}
		if m.Group.Disabled() {
			name += " (disabled)"
		}

		buttons := make([]string, 0, len(m.Buttons))
		for _, b := range m.Buttons {
			style := s.button
			label := " " + b.Label() + " "
			if b.Disabled() {
				style = s.disabled
			}
			if b.Pressed() {
				style = s.pressed
				label = "[" + b.Label() + "]"
			}
			buttons = append(buttons, style.Render(label))
		}

		lines = append(lines, s.title.Render(name)+": "+strings.Join(buttons, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
