// Package episode describes the content of one lesson video and the lesson
// configuration files the scaffolder writes.
//
// An Episode is the flat record the composer reads: character, pinyin,
// translation, hook lines and fun fact. A LessonConfig is the on-disk JSON
// form stored as <lesson>/config.json; LoadLesson reads it back and
// LessonConfig.Episode derives the video content from it.
package episode
