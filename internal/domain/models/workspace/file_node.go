package workspace

import (
	"path"
	"strings"
)

// NodeKind distinguishes file nodes from folder nodes.
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindFolder NodeKind = "folder"
)

// FileNode represents one file or folder in a project tree.
//
// Path is the absolute slash-separated path from the project root, unique
// across the tree, and is the sole key used for protocol addressing. Children
// is present only on folders; insertion order is display order. Folder nodes
// never carry meaningful content.
//
// FileNode values are treated as immutable once they are part of the current
// project: tree operations copy nodes instead of editing them in place, so
// readers always observe complete snapshots.
type FileNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Kind     NodeKind    `json:"type"`
	Content  string      `json:"content,omitempty"`
	Language string      `json:"language,omitempty"`
	Children []*FileNode `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n *FileNode) IsFolder() bool {
	return n.Kind == KindFolder
}

// BaseName returns the final segment of p.
func BaseName(p string) string {
	return path.Base(strings.TrimSuffix(p, "/"))
}

// LanguageForFilename derives the semantic language tag for a file name from
// its extension. Unknown extensions map to "text".
func LanguageForFilename(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".tsx", ".ts":
		return "typescript"
	case ".jsx", ".js":
		return "javascript"
	case ".css":
		return "css"
	case ".html":
		return "html"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}
