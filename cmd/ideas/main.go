package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/output"
	"github.com/abatilo/ideas/internal/store"
	"github.com/abatilo/ideas/internal/view"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput  bool
	verbose     bool
	configFile  string
	backendFlag string
	formatter   output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ideas",
		Short: "Track ideas from the terminal",
		Long:  "ideas - capture, prioritize and follow up on ideas stored in the ideas API.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			formatter = output.New(jsonOutput)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to "+os.TempDir())
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/ideas/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Where ideas live (api, file, memory)")

	rootCmd.AddCommand(
		listCmd(),
		showCmd(),
		addCmd(),
		editCmd(),
		statusCmd(),
		priorityCmd(),
		rmCmd(),
		tuiCmd(),
		loginCmd(),
		logoutCmd(),
		exportCmd(),
		importCmd(),
		serveCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// printResult reports a mutation. A one-shot command that could not save
// has lost the change, so it exits non-zero.
func printResult(action string, res store.Result) {
	printOutput(formatter.FormatResult(action, res))
	if !res.Saved {
		os.Exit(1)
	}
}

// loadController returns a controller with the collection already loaded.
func loadController(cmd *cobra.Command) (*App, *view.Controller) {
	app, err := newApp(cmd, false)
	if err != nil {
		printError(err)
	}
	ctrl := view.NewController(app.Store, app.Logger)
	ctrl.Load(cmd.Context())
	return app, ctrl
}

// listCmd implements 'ideas list'.
func listCmd() *cobra.Command {
	var search, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas",
		Run: func(cmd *cobra.Command, _ []string) {
			key, err := view.ParseSortKey(sortBy)
			if err != nil {
				printError(err)
			}

			app, ctrl := loadController(cmd)
			defer app.Close()
			printOutput(formatter.FormatIdeaList(ctrl.Projection(search, key)))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "q", "", "Only ideas whose title or description contains this text")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "none", "Sort by (priority, status, date, none)")
	return cmd
}

// showCmd implements 'ideas show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show idea details",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app, err := newApp(cmd, false)
			if err != nil {
				printError(err)
			}
			defer app.Close()

			i, err := app.Store.Get(cmd.Context(), args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatIdea(i))
		},
	}
}

// addCmd implements 'ideas add'.
func addCmd() *cobra.Command {
	var description, status, priority string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new idea",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			in := idea.Input{Title: args[0], Description: description}
			var err error
			if status != "" {
				if in.Status, err = idea.ParseStatus(status); err != nil {
					printError(err)
				}
			}
			if priority != "" {
				if in.Priority, err = idea.ParsePriority(priority); err != nil {
					printError(err)
				}
			}

			app, ctrl := loadController(cmd)
			defer app.Close()

			res, err := ctrl.Create(cmd.Context(), in)
			if err != nil {
				printError(err)
			}
			printResult("Created", res)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Idea description (required)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Status (pending, in-progress, done)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (high, medium, low)")
	return cmd
}

// editCmd implements 'ideas edit'.
func editCmd() *cobra.Command {
	var title, description, status, priority string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an idea",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app, ctrl := loadController(cmd)
			defer app.Close()

			current, ok := ctrl.Find(args[0])
			if !ok {
				printError(ideaerrors.IdeaNotFoundError{ID: args[0]})
			}

			in := idea.Input{
				Title:       current.Title,
				Description: current.Description,
				Status:      current.Status,
				Priority:    current.Priority,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("description") {
				in.Description = description
			}
			var err error
			if flags.Changed("status") {
				if in.Status, err = idea.ParseStatus(status); err != nil {
					printError(err)
				}
			}
			if flags.Changed("priority") {
				if in.Priority, err = idea.ParsePriority(priority); err != nil {
					printError(err)
				}
			}
			if err = in.Validate(); err != nil {
				printError(err)
			}

			current.Title = in.Title
			current.Description = in.Description
			current.Status = in.Status
			current.Priority = in.Priority
			res, err := ctrl.Edit(cmd.Context(), current)
			if err != nil {
				printError(err)
			}
			printResult("Updated", res)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	return cmd
}

// statusCmd implements 'ideas status'.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of an idea",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(cmd *cobra.Command, args []string) {
			s, err := idea.ParseStatus(args[1])
			if err != nil {
				printError(err)
			}

			app, ctrl := loadController(cmd)
			defer app.Close()

			res, err := ctrl.ChangeStatus(cmd.Context(), args[0], s)
			if err != nil {
				printError(err)
			}
			printResult(fmt.Sprintf("Status set to %s:", s), res)
		},
	}
}

// priorityCmd implements 'ideas priority'.
func priorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <priority>",
		Short: "Change the priority of an idea",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(cmd *cobra.Command, args []string) {
			p, err := idea.ParsePriority(args[1])
			if err != nil {
				printError(err)
			}

			app, ctrl := loadController(cmd)
			defer app.Close()

			res, err := ctrl.ChangePriority(cmd.Context(), args[0], p)
			if err != nil {
				printError(err)
			}
			printResult(fmt.Sprintf("Priority set to %s:", p), res)
		},
	}
}

// rmCmd implements 'ideas rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app, ctrl := loadController(cmd)
			defer app.Close()

			res, err := ctrl.Remove(cmd.Context(), args[0])
			if err != nil {
				printError(err)
			}
			printResult("Deleted", res)
		},
	}
}
