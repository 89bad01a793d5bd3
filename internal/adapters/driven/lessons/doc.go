// Package lessons loads the static lesson dataset from YAML.
//
// The default dataset is embedded in the binary; a file path overrides it.
// Watcher reloads a file-backed dataset when the file changes.
package lessons
