package scaffold

import (
	"fmt"
	"path/filepath"

	"hanzireel/internal/episode"
	"hanzireel/internal/textutil"
)

// Fixed names of the lesson tree.
const (
	RootDir             = "chinese_lessons"
	SampleLessonID      = "01_wo"
	PlaceholderLessonID = "02_ai"
	AssetsDir           = "assets"
	UtilsDir            = "utils"
	RenderScript        = "render.py"
)

// Sections are the per-lesson section folders, in creation order.
var Sections = []string{"hook", "core_lesson", "quick_example", "cultural_nugget", "call_to_action"}

// AssetFolders are created under assets/.
var AssetFolders = []string{"shared_fonts", "images", "sounds", "backgrounds", "styles"}

// UtilityFiles are created under utils/.
var UtilityFiles = []string{"base_scene.py", "style_loader.py", "config_loader.py", "animation_helpers.py"}

// Kind says how an entry is materialized.
type Kind string

const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
	KindJSON Kind = "json"
)

// Entry is one path to create.
type Entry struct {
	Path    string
	Kind    Kind
	Content []byte
}

// Plan lists every entry of the lesson tree under base, in creation order.
func Plan(base string) ([]Entry, error) {
	root := filepath.Join(base, RootDir)
	entries := []Entry{dir(root)}

	lesson, err := lessonEntries(filepath.Join(root, SampleLessonID), episode.SampleLesson())
	if err != nil {
		return nil, err
	}
	entries = append(entries, lesson...)
	entries = append(entries, dir(filepath.Join(root, PlaceholderLessonID)))

	assets := filepath.Join(root, AssetsDir)
	entries = append(entries, dir(assets))
	for _, sub := range AssetFolders {
		entries = append(entries, dir(filepath.Join(assets, sub)))
	}

	utils := filepath.Join(root, UtilsDir)
	entries = append(entries, dir(utils))
	for _, name := range UtilityFiles {
		entries = append(entries, file(filepath.Join(utils, name), UtilityTemplate(name)))
	}

	entries = append(entries, file(filepath.Join(base, RenderScript), RenderTemplate()))
	return entries, nil
}

// lessonEntries lists a lesson folder, its section folders with their scene
// files, and its config.json.
func lessonEntries(lessonDir string, lesson episode.LessonConfig) ([]Entry, error) {
	entries := []Entry{dir(lessonDir)}
	for _, section := range Sections {
		sectionDir := filepath.Join(lessonDir, section)
		entries = append(entries,
			dir(sectionDir),
			file(filepath.Join(sectionDir, SceneFileName(section)), SceneTemplate(section)),
		)
	}
	data, err := episode.Marshal(lesson)
	if err != nil {
		return nil, fmt.Errorf("lesson config: %w", err)
	}
	entries = append(entries, Entry{Path: filepath.Join(lessonDir, episode.ConfigFileName), Kind: KindJSON, Content: data})
	return entries, nil
}

func dir(path string) Entry { return Entry{Path: path, Kind: KindDir} }

func file(path, content string) Entry {
	return Entry{Path: path, Kind: KindFile, Content: []byte(content)}
}

// SceneFileName is the placeholder scene script inside a section folder.
func SceneFileName(section string) string {
	return section + "_scene.py"
}

// SceneTemplate is the content of a section's scene script.
func SceneTemplate(section string) string {
	return fmt.Sprintf("# %s – scene script for the %s section\n", SceneFileName(section), textutil.TitleWords(section))
}

// UtilityTemplate is the content of a utils/ module.
func UtilityTemplate(name string) string {
	return fmt.Sprintf("# %s – utility module\n", name)
}

// RenderTemplate is the content of the root render script.
func RenderTemplate() string {
	return "# render.py – master script to render scenes for any word\n"
}
