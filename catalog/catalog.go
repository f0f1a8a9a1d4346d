// Package catalog persists emote entries as the JSON file read by the emote
// picker, and offers the read side of that contract.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"emotecat/types"
)

// FileName is the catalog file name the picker looks for.
const FileName = "emotes.json"

// appDir is the picker's directory under the user config dir.
const appDir = "emote-picker"

var ErrWriteFailed = errors.New("catalog write failed")

// DefaultPath returns the location the picker loads its catalog from.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, FileName), nil
}

// Write replaces the catalog at path with entries. The file is written to a
// temporary sibling and renamed into place, so readers see either the old
// catalog or the complete new one.
func Write(path string, entries []types.EmoteEntry) error {
	if entries == nil {
		entries = []types.EmoteEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// Load reads the catalog at path. A missing or unparsable file is an empty
// catalog, not an error.
func Load(path string) ([]types.EmoteEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.EmoteEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []types.EmoteEntry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return []types.EmoteEntry{}, nil
	}
	return entries, nil
}

// Summarize counts entries per group, in order of first appearance.
func Summarize(entries []types.EmoteEntry) []types.GroupCount {
	var counts []types.GroupCount
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Group]
		if !ok {
			i = len(counts)
			index[e.Group] = i
			counts = append(counts, types.GroupCount{Group: e.Group})
		}
		counts[i].Count++
	}
	return counts
}

// Query selects entries. Empty fields match everything.
type Query struct {
	// Name matches a case-insensitive substring of the entry name.
	Name  string
	Group string
	Tag   string
}

// Filter returns the entries matching q in their original order.
func Filter(entries []types.EmoteEntry, q Query) []types.EmoteEntry {
	name := strings.ToLower(q.Name)

	var out []types.EmoteEntry
	for _, e := range entries {
		if q.Group != "" && e.Group != q.Group {
			continue
		}
		if q.Tag != "" && !slices.Contains(e.Tags, q.Tag) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(e.Name), name) {
			continue
		}
		out = append(out, e)
	}
	return out
}
