package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hanzireel/internal/scaffold"
)

func newScaffoldCommand() *cobra.Command {
	var (
		dir    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:         "scaffold",
		Short:       "Create the chinese_lessons folder structure",
		Long:        "Scaffold creates missing directories and rewrites every template file and the sample lesson config.",
		Args:        cobra.NoArgs,
		Annotations: skipConfigLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveBaseDir(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				entries, err := scaffold.Plan(base)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{relPath(base, e.Path), string(e.Kind)})
				}
				fmt.Fprintln(out, tableSpec{Title: base, Headers: []string{"Path", "Kind"}, Rows: rows}.render())
				return nil
			}

			res, err := scaffold.Run(cmd.Context(), base)
			if err != nil {
				return fmt.Errorf("scaffold %s: %w", base, err)
			}
			writeScaffoldResult(out, base, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Base directory (default: working directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned paths without creating anything")
	return cmd
}

func writeScaffoldResult(out io.Writer, base string, res scaffold.Result) {
	rows := make([][]string, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		rows = append(rows, []string{relPath(base, o.Entry.Path), string(o.Entry.Kind), string(o.Action)})
	}
	fmt.Fprintln(out, tableSpec{Headers: []string{"Path", "Kind", "Action"}, Rows: rows}.render())
	fmt.Fprintf(out, "%d created, %d existing, %d written, %d overwritten\n",
		res.Count(scaffold.ActionCreated),
		res.Count(scaffold.ActionExists),
		res.Count(scaffold.ActionWritten),
		res.Count(scaffold.ActionOverwritten),
	)
}

func resolveBaseDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
