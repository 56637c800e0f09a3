package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories never worth inlining into model context.
var excludedDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, "__pycache__": {}, ".venv": {},
	"venv": {}, "env": {}, "dist": {}, "build": {}, ".next": {},
	".nuxt": {}, "target": {}, "coverage": {}, ".pytest_cache": {},
	".mypy_cache": {}, "vendor": {},
}

var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".java": {},
	".cpp": {}, ".c": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".go": {},
	".rs": {}, ".rb": {}, ".php": {}, ".swift": {}, ".kt": {}, ".scala": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".sql": {}, ".html": {}, ".css": {},
	".scss": {}, ".sass": {}, ".json": {}, ".yaml": {}, ".yml": {},
	".xml": {}, ".md": {}, ".txt": {}, ".toml": {}, ".ini": {}, ".cfg": {},
	".conf": {},
}

const (
	maxTreeDepth       = 2
	maxContextLines    = 200
	maxContextFileSize = 3000
)

// WorkspaceRoot walks up from the working directory looking for a .git or
// .vscode marker, falling back to the working directory itself.
func WorkspaceRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dir := cwd
	for {
		if dirExists(filepath.Join(dir, ".git")) || dirExists(filepath.Join(dir, ".vscode")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ContextFile is one file selected for inclusion in the model context.
type ContextFile struct {
	Path    string
	Content string
}

// GatherContext assembles the workspace context block sent with the first
// message of a session: the active file if given, then either the open
// editor tabs or a directory tree plus query-relevant files.
func GatherContext(query, activeFile string, maxFiles int) string {
	var b strings.Builder
	root := WorkspaceRoot()
	fmt.Fprintf(&b, "Working Directory: %s\n", root)

	if activeFile != "" {
		if content, err := readFileLimited(activeFile, maxContextLines); err == nil {
			fmt.Fprintf(&b, "\n## File: %s\n```\n%s\n```\n", activeFile, content)
		} else {
			fmt.Fprintf(&b, "\nNote: specified file %q could not be read.\n", activeFile)
		}
	}

	if tabs := OpenEditorTabs(); len(tabs) > 0 {
		var section strings.Builder
		included := 0
		for _, path := range tabs {
			if included >= maxFiles {
				break
			}
			content, err := readFileLimited(path, maxContextLines)
			if err != nil {
				continue
			}
			fmt.Fprintf(&section, "\n### %s\n```\n%s\n```\n", path, content)
			included++
		}
		if included > 0 {
			b.WriteString("\n## Currently Open in Editor:\n")
			b.WriteString(section.String())
			return b.String()
		}
	}

	b.WriteString("\n## Repository Structure:\n")
	b.WriteString(DirectoryTree(root, maxTreeDepth))

	if files := RelevantFiles(root, query, maxFiles); len(files) > 0 {
		b.WriteString("\n## Relevant Files:\n")
		for _, f := range files {
			content := f.Content
			if len(content) > maxContextFileSize {
				content = content[:maxContextFileSize] + "\n... (truncated)"
			}
			fmt.Fprintf(&b, "\n### %s\n```\n%s\n```\n", f.Path, content)
		}
	}
	return b.String()
}

// DirectoryTree renders a tree of code files under root, depth-limited.
func DirectoryTree(root string, maxDepth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory structure of %s:\n", root)
	walkTree(&b, root, "", 0, maxDepth)
	return b.String()
}

func walkTree(b *strings.Builder, dir, prefix string, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var dirs, files []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			if _, skip := excludedDirs[e.Name()]; !skip {
				dirs = append(dirs, e)
			}
			continue
		}
		if _, ok := codeExtensions[filepath.Ext(e.Name())]; ok {
			files = append(files, e)
		}
	}

	all := append(dirs, files...)
	for i, e := range all {
		last := i == len(all)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, e.Name())
		if e.IsDir() && depth < maxDepth {
			walkTree(b, filepath.Join(dir, e.Name()), childPrefix, depth+1, maxDepth)
		}
	}
}

// RelevantFiles picks up to maxFiles code files under root, preferring
// names that match the query and otherwise the most recently modified.
func RelevantFiles(root, query string, maxFiles int) []ContextFile {
	type candidate struct {
		path    string
		score   int
		modTime int64
	}
	var candidates []candidate
	queryLower := strings.ToLower(query)

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if _, skip := excludedDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := codeExtensions[filepath.Ext(d.Name())]; !ok {
			return nil
		}
		score := 0
		nameLower := strings.ToLower(d.Name())
		if queryLower != "" && strings.Contains(queryLower, strings.TrimSuffix(nameLower, filepath.Ext(nameLower))) {
			score += 10
		}
		for _, term := range strings.Fields(queryLower) {
			if strings.Contains(nameLower, term) {
				score += 5
			}
		}
		var mod int64
		if info, err := d.Info(); err == nil {
			mod = info.ModTime().UnixNano()
		}
		candidates = append(candidates, candidate{path: path, score: score, modTime: mod})
		return nil
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].modTime > candidates[j].modTime
	})

	var out []ContextFile
	for _, c := range candidates {
		if len(out) >= maxFiles {
			break
		}
		data, err := os.ReadFile(c.path)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, c.path)
		if err != nil {
			rel = c.path
		}
		out = append(out, ContextFile{Path: rel, Content: string(data)})
	}
	return out
}

func readFileLimited(path string, maxLines int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) <= maxLines {
		return string(data), nil
	}
	return strings.Join(lines[:maxLines], "\n") + fmt.Sprintf("\n... (truncated, %d+ lines)", maxLines), nil
}
