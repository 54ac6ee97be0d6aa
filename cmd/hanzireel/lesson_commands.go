package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"hanzireel/internal/episode"
	"hanzireel/internal/scaffold"
)

func newLessonCommand() *cobra.Command {
	lessonCmd := &cobra.Command{
		Use:         "lesson",
		Short:       "Manage lesson configs",
		Annotations: skipConfigLoad,
	}
	lessonCmd.AddCommand(newLessonAddCommand())
	lessonCmd.AddCommand(newLessonShowCommand())
	lessonCmd.AddCommand(newLessonSchemaCommand())
	return lessonCmd
}

func newLessonAddCommand() *cobra.Command {
	var (
		root   string
		lesson episode.LessonConfig
	)

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a lesson folder with its sections and config.json",
		Example: "  hanzireel lesson add 03_ni --character 你 --pinyin nǐ --translation you \\\n" +
			"    --example-chinese 你好！ --example-pinyin \"Nǐ hǎo!\" --example-english Hello!",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveBaseDir(root)
			if err != nil {
				return err
			}
			if root == "" {
				base = filepath.Join(base, scaffold.RootDir)
			}
			res, err := scaffold.AddLesson(cmd.Context(), base, args[0], lesson)
			if err != nil {
				return err
			}
			writeScaffoldResult(cmd.OutOrStdout(), base, res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&root, "root", "", "Lessons root (default: ./chinese_lessons)")
	flags.StringVar(&lesson.Character, "character", "", "Chinese character")
	flags.StringVar(&lesson.Pinyin, "pinyin", "", "Pinyin with tone marks")
	flags.StringVar(&lesson.Translation, "translation", "", "English meaning")
	flags.StringVar(&lesson.ExampleSentence.Chinese, "example-chinese", "", "Example sentence")
	flags.StringVar(&lesson.ExampleSentence.Pinyin, "example-pinyin", "", "Example sentence pinyin")
	flags.StringVar(&lesson.ExampleSentence.English, "example-english", "", "Example sentence translation")
	flags.StringVar(&lesson.Colors.Background, "background", "", "Background color (#rrggbb)")
	flags.StringVar(&lesson.Colors.Text, "text-color", "", "Text color (#rrggbb)")
	flags.StringVar(&lesson.Style, "style", "", "Visual style")
	flags.IntVar(&lesson.Day, "day", 0, "Episode day number")
	flags.StringVar(&lesson.FunFact, "fun-fact", "", "Fun fact shown in the video")
	_ = cmd.MarkFlagRequired("character")
	_ = cmd.MarkFlagRequired("pinyin")
	return cmd
}

func newLessonShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Print a lesson config and the episode derived from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := episode.LoadLesson(args[0])
			if err != nil {
				return err
			}
			data, err := episode.Marshal(lesson)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(data))

			ep := lesson.Episode(0)
			rows := [][]string{
				{"Day", strconv.Itoa(ep.Day)},
				{"Character", ep.Character},
				{"Pinyin", ep.Pinyin},
				{"Translation", ep.Translation},
				{"Hook line 1", ep.HookLine1},
				{"Hook line 2", ep.HookLine2},
				{"Fun fact", ep.FunFact},
				{"Background", ep.Background},
				{"Text color", ep.TextColor},
				{"Style", ep.Style},
			}
			fmt.Fprintln(out, tableSpec{Title: "Episode", Headers: []string{"Field", "Value"}, Rows: rows}.render())
			return nil
		},
	}
}

func newLessonSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for lesson config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := episode.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
