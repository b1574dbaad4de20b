package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/storage"
)

// exportCmd implements 'ideas export'.
func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every idea to a directory of markdown files",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app, err := newApp(cmd, false)
			if err != nil {
				printError(err)
			}
			defer app.Close()

			// The backend is read directly so a failed listing is an error
			// instead of an empty export.
			ideas, err := app.Repo.List(cmd.Context())
			if err != nil {
				printError(err)
			}

			dst := storage.NewStoreWithPath(args[0], app.Logger)
			for i := range ideas {
				if err = dst.Save(&ideas[i]); err != nil {
					printError(err)
				}
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Exported %d ideas to %s", len(ideas), dst.BasePath())))
		},
	}
}

// importCmd implements 'ideas import'.
func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Create ideas from a directory of markdown files",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app, err := newApp(cmd, false)
			if err != nil {
				printError(err)
			}
			defer app.Close()

			src := storage.NewStoreWithPath(args[0], app.Logger)
			ideas, err := src.LoadAll()
			if err != nil {
				printError(err)
			}

			imported := 0
			for _, i := range ideas {
				if err = app.Repo.Create(cmd.Context(), i); err != nil {
					app.Logger.Warn("import idea failed", zap.String("id", i.ID), zap.Error(err))
					continue
				}
				imported++
			}
			if imported < len(ideas) {
				printError(fmt.Errorf("imported %d of %d ideas", imported, len(ideas)))
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Imported %d ideas", imported)))
		},
	}
}
