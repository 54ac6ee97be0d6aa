// Package scaffold creates the directory tree used to organize lessons.
//
// Plan computes the full list of directories and files under a base
// directory without touching the filesystem; Apply creates them. Directories
// are created only when missing, while template files and lesson configs are
// always rewritten. There is no rollback: the first failure stops Apply and
// leaves whatever was already written in place.
package scaffold
