package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/projects"
	"github.com/iiroan/folio/internal/ui"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Show the project catalog with the saved view and filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showProjects()
	},
}

var projectsViewCmd = &cobra.Command{
	Use:       "view <grid|list|masonry>",
	Short:     "Set the projects layout",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(projects.Grid), string(projects.List), string(projects.Masonry)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := projects.ParseViewMode(args[0])
		if !ok {
			return fmt.Errorf("unknown view mode %q (want grid, list or masonry)", args[0])
		}
		return svc.projects.SetViewMode(mode)
	},
}

var projectsFilterCmd = &cobra.Command{
	Use:       "filter <category>",
	Short:     "Set the project category filter",
	Args:      cobra.ExactArgs(1),
	ValidArgs: projects.Categories,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(projects.Categories, args[0]) {
			return fmt.Errorf("unknown category %q (want one of %s)", args[0], strings.Join(projects.Categories, ", "))
		}
		svc.prefs.SetProjectFilter(args[0])
		return nil
	},
}

var projectsGroupCmd = &cobra.Command{
	Use:   "group <name>...",
	Short: "Toggle groups in the group filter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		known := projects.Groups(projects.Catalog(string(svc.i18n.Language())))
		for _, g := range args {
			if !slices.Contains(known, g) {
				logger.Warn("group not in the catalog", "group", g)
			}
			svc.projects.ToggleGroup(g)
		}
		return nil
	},
}

var projectsStageCmd = &cobra.Command{
	Use:   "stage <n>...",
	Short: "Toggle stages in the stage filter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range args {
			svc.projects.ToggleStage(s)
		}
		return nil
	},
}

var projectsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the group and stage filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc.projects.ClearFilters()
		return nil
	},
}

func init() {
	projectsCmd.AddCommand(projectsViewCmd)
	projectsCmd.AddCommand(projectsFilterCmd)
	projectsCmd.AddCommand(projectsGroupCmd)
	projectsCmd.AddCommand(projectsStageCmd)
	projectsCmd.AddCommand(projectsClearCmd)
}

func visibleProjects() []projects.Project {
	all := projects.Catalog(string(svc.i18n.Language()))
	category := svc.prefs.Snapshot().ProjectFilter
	return svc.projects.Filter(projects.ByCategory(all, category))
}

func showProjects() error {
	t := svc.i18n.T
	category := svc.prefs.Snapshot().ProjectFilter
	view := svc.projects.ViewMode()
	list := visibleProjects()

	ui.StartScreen(t("projectsPage.badge"), fmt.Sprintf("%s: %s · %s",
		t("projectsPage.viewMode"), view, t("projectsPage.filters."+category)))

	if groups := svc.projects.SelectedGroups(); len(groups) > 0 {
		fmt.Println(ui.Subtitle().Render("groups: " + strings.Join(groups, ", ")))
	}
	if stages := svc.projects.SelectedStages(); len(stages) > 0 {
		fmt.Println(ui.Subtitle().Render(t("projectsPage.stageLabel") + ": " + strings.Join(stages, ", ")))
	}
	if len(list) == 0 {
		fmt.Println(ui.WarningStyle().Render("No projects match the current filters."))
		return nil
	}

	fmt.Println(renderProjects(list, view, t("projectsPage.stageLabel")))
	return nil
}

func renderProjects(list []projects.Project, view projects.ViewMode, stageLabel string) string {
	if view == projects.List {
		lines := make([]string, 0, len(list))
		for _, p := range list {
			lines = append(lines, fmt.Sprintf("%s  %s %s",
				ui.PrimaryStyle().Render(fmt.Sprintf("%-5s", p.ID)),
				p.Title,
				ui.HintStyle().Render("("+p.Group+", "+stageLabel+" "+p.Stage+")")))
		}
		return strings.Join(lines, "\n")
	}

	const columns = 3
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Border()).
		Padding(0, 1).
		Width(24)

	cols := make([][]string, columns)
	for i, p := range list {
		body := ui.PrimaryStyle().Render(p.ID) + "\n" + p.Title + "\n" + ui.MutedStyle().Render(stageLabel+" "+p.Stage)
		c := card
		if view == projects.Masonry && i%2 == 1 {
			// Alternate card heights for the staggered layout.
			c = c.PaddingBottom(1)
		}
		cols[i%columns] = append(cols[i%columns], c.Render(body))
	}

	if view == projects.Masonry {
		rendered := make([]string, 0, columns)
		for _, col := range cols {
			rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, col...))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	var rows []string
	for start := 0; start < len(list); start += columns {
		var row []string
		for i := start; i < start+columns && i < len(list); i++ {
			row = append(row, cols[i%columns][i/columns])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
