package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// OpenEditorTabs is a best-effort read-only side channel: it scans VS
// Code's workspaceStorage for the most recently used workspace and
// returns the recently modified code files in its folder, newest first.
// Any failure degrades to an empty result.
func OpenEditorTabs() []string {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	storageDir := filepath.Join(base, "Code", "User", "workspaceStorage")
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		return nil
	}

	var newest string
	var newestTime time.Time
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(storageDir, e.Name(), "workspace.json")
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = path
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return nil
	}

	data, err := os.ReadFile(newest)
	if err != nil {
		return nil
	}
	var state struct {
		Folder string `json:"folder"`
	}
	if err := json.Unmarshal(data, &state); err != nil || state.Folder == "" {
		return nil
	}
	folder := strings.TrimPrefix(state.Folder, "file://")
	return recentWorkspaceFiles(folder)
}

// recentWorkspaceFiles stands in for the editor's actual tab list, which
// workspaceStorage does not expose: the code files touched most recently
// are the best available proxy for what is open.
func recentWorkspaceFiles(folder string) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}

	type tab struct {
		path string
		mod  time.Time
	}
	var tabs []tab
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := codeExtensions[filepath.Ext(e.Name())]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		tabs = append(tabs, tab{path: filepath.Join(folder, e.Name()), mod: info.ModTime()})
	}
	sort.Slice(tabs, func(i, j int) bool { return tabs[i].mod.After(tabs[j].mod) })

	var out []string
	for _, t := range tabs {
		out = append(out, t.path)
	}
	return out
}
