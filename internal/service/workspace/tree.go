// Package workspace holds the current project's in-memory file tree and the
// pure operations over it. Trees are immutable values: every operation that
// "mutates" returns a fresh forest whose changed spine is newly allocated,
// while untouched subtrees are shared. The single holder swaps whole trees,
// so readers never observe a partially edited snapshot and no locking is
// needed around traversals.
package workspace

import (
	models "viber/internal/domain/models/workspace"
)

// FindByPath returns the node whose Path exactly matches path, searching
// depth-first. Paths are unique by invariant, so traversal order does not
// affect the result. Returns nil when no node matches.
func FindByPath(files []*models.FileNode, path string) *models.FileNode {
	for _, f := range files {
		if f.Path == path {
			return f
		}
		if found := FindByPath(f.Children, path); found != nil {
			return found
		}
	}
	return nil
}

// FindByID returns the node with the given ID, or nil.
func FindByID(files []*models.FileNode, id string) *models.FileNode {
	for _, f := range files {
		if f.ID == id {
			return f
		}
		if found := FindByID(f.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// ReplaceContent returns a new forest in which the file with the given ID
// carries content. Every ancestor of the changed node is a fresh node; all
// untouched siblings and subtrees are shared with the input. An unknown ID,
// or an ID naming a folder, returns the input forest unchanged.
func ReplaceContent(files []*models.FileNode, id, content string) []*models.FileNode {
	out, _ := replaceContent(files, id, content)
	return out
}

func replaceContent(files []*models.FileNode, id, content string) ([]*models.FileNode, bool) {
	for i, f := range files {
		if f.ID == id {
			if f.IsFolder() {
				return files, false
			}
			clone := *f
			clone.Content = content
			return replaceAt(files, i, &clone), true
		}
		if len(f.Children) > 0 {
			if children, ok := replaceContent(f.Children, id, content); ok {
				clone := *f
				clone.Children = children
				return replaceAt(files, i, &clone), true
			}
		}
	}
	return files, false
}

// Insert returns a new forest with node appended to the children of the
// folder at parentPath, preserving prior order. When parentPath is empty, or
// no folder resolves to it, the node is appended at the root level instead -
// a missing parent must never block the edit.
func Insert(files []*models.FileNode, parentPath string, node *models.FileNode) []*models.FileNode {
	if parentPath != "" {
		if out, ok := insertUnder(files, parentPath, node); ok {
			return out
		}
	}
	out := make([]*models.FileNode, 0, len(files)+1)
	out = append(out, files...)
	return append(out, node)
}

func insertUnder(files []*models.FileNode, parentPath string, node *models.FileNode) ([]*models.FileNode, bool) {
	for i, f := range files {
		if f.Path == parentPath && f.IsFolder() {
			clone := *f
			clone.Children = make([]*models.FileNode, 0, len(f.Children)+1)
			clone.Children = append(clone.Children, f.Children...)
			clone.Children = append(clone.Children, node)
			return replaceAt(files, i, &clone), true
		}
		if len(f.Children) > 0 {
			if children, ok := insertUnder(f.Children, parentPath, node); ok {
				clone := *f
				clone.Children = children
				return replaceAt(files, i, &clone), true
			}
		}
	}
	return files, false
}

// Flatten collects every file node (folders excluded) in depth-first display
// order.
func Flatten(files []*models.FileNode) []*models.FileNode {
	var out []*models.FileNode
	for _, f := range files {
		if f.IsFolder() {
			out = append(out, Flatten(f.Children)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// replaceAt copies the slice with element i swapped for node.
func replaceAt(files []*models.FileNode, i int, node *models.FileNode) []*models.FileNode {
	out := make([]*models.FileNode, len(files))
	copy(out, files)
	out[i] = node
	return out
}
