package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hanzireel/internal/render"
	"hanzireel/internal/scene"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var (
		lesson    string
		seed      int64
		showSteps bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the section and step timeline without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			plan, err := render.Prepare(cfg, lesson, seed)
			if err != nil {
				return err
			}
			tl, err := plan.Composer.Plan()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(tl)
			}

			fmt.Fprintf(out, "%s (%s): %s, seed %d, %d fps\n",
				plan.Episode.Character, plan.Episode.Pinyin, plan.Episode.Translation, plan.Seed, cfg.Render.FPS)
			fmt.Fprintln(out, sectionTable(tl).render())
			if showSteps {
				fmt.Fprintln(out, stepTable(tl).render())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lesson, "lesson", "l", "", "Lesson config file or directory (default: built-in sample)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed")
	cmd.Flags().BoolVar(&showSteps, "steps", false, "List every step")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the timeline as JSON")
	return cmd
}

func sectionTable(tl scene.Timeline) tableSpec {
	rows := make([][]string, 0, len(tl.Sections))
	steps, anims := 0, 0
	for _, sec := range tl.Sections {
		rows = append(rows, []string{
			sec.Name,
			seconds(sec.Start),
			seconds(sec.Duration),
			strconv.Itoa(sec.Steps),
			strconv.Itoa(sec.Animations),
		})
		steps += sec.Steps
		anims += sec.Animations
	}
	return tableSpec{
		Headers: []string{"Section", "Start", "Duration", "Steps", "Animations"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
		Footer:  []string{"total", "", seconds(tl.Duration), strconv.Itoa(steps), strconv.Itoa(anims)},
	}
}

func stepTable(tl scene.Timeline) tableSpec {
	rows := make([][]string, 0, len(tl.Steps))
	for _, step := range tl.Steps {
		what := "wait"
		if !step.Wait {
			kinds := make([]string, 0, len(step.Animations))
			for _, a := range step.Animations {
				kinds = append(kinds, fmt.Sprintf("%s(%s)", a.Kind, a.Target))
			}
			what = strings.Join(kinds, ", ")
		}
		rows = append(rows, []string{
			strconv.Itoa(step.Index),
			step.Section,
			seconds(step.Start),
			seconds(step.Duration),
			what,
		})
	}
	return tableSpec{
		Headers: []string{"#", "Section", "Start", "Duration", "Animations"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
	}
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "s"
}
