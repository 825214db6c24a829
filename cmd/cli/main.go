package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"projectpulse/adapters/excel"
	"projectpulse/internal/config"
	"projectpulse/internal/container"
)

// pulse is the terminal companion to the dashboard: inspect KPIs and manage
// tracker projects without a browser.
func main() {
	root := &cobra.Command{
		Use:           "pulse",
		Short:         "Project KPI dashboard and tracker from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(kpiCommand())
	root.AddCommand(projectsCommand())
	root.AddCommand(tasksCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// wire loads config and builds the shared dependency graph.
func wire() (*container.Container, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func kpiCommand() *cobra.Command {
	var xlsxOut string

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Print the KPI summary for the configured sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			report, err := deps.Dashboard.Report(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-24s %10s %10s %12s %10s\n", "Type", "Design", "As Built", "Completion", "Left")
			for _, s := range report.Summaries {
				fmt.Fprintf(w, "%-24s %10.0f %10.0f %11.2f%% %10.0f\n",
					s.Category, s.Design, s.Built, s.Completion, s.Remaining)
			}
			o := report.Overall
			fmt.Fprintf(w, "%-24s %10.0f %10.0f %11.2f%% %10.0f\n",
				"Overall", o.Design, o.Built, o.Completion, o.Remaining)

			if xlsxOut != "" {
				f, err := os.Create(xlsxOut)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := excel.WriteSummary(f, report.Summaries, report.Overall); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nWrote %s\n", xlsxOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write the summary to an xlsx workbook")
	return cmd
}

func projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage tracker projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects and their tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			projects, err := deps.Tracker.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(w, "No projects yet.")
				return nil
			}
			for _, p := range projects {
				fmt.Fprintf(w, "%s (%d tasks)\n", p.Name, len(p.Tasks))
				for _, t := range p.Tasks {
					fmt.Fprintf(w, "  [%s] %s  (%s)\n", t.Status, t.Name, t.ID)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			project, err := deps.Tracker.AddProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q\n", project.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "notes <name> <notes...>",
		Short: "Replace the markdown notes of a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			if err := deps.Tracker.UpdateNotes(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for %q\n", args[0])
			return nil
		},
	})

	return cmd
}

func tasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks within a project",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <project> <task...>",
		Short: "Add a task to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			task, err := deps.Tracker.AddTask(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%s)\n", task.Name, task.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Update the status of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := wire()
			if err != nil {
				return err
			}
			defer deps.Shutdown()

			taskID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q: %w", args[0], err)
			}
			if err := deps.Tracker.UpdateTaskStatus(cmd.Context(), taskID, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated task status")
			return nil
		},
	})

	return cmd
}
