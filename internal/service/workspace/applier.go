package workspace

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	models "viber/internal/domain/models/workspace"
	"viber/internal/protocol"
)

// Applier applies decoded modification records to a project file forest.
type Applier struct {
	logger *slog.Logger
	newID  func() string
}

// NewApplier creates an applier that assigns fresh UUIDs to created files.
func NewApplier(logger *slog.Logger) *Applier {
	return &Applier{
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Apply runs records in order against files and returns the resulting forest
// together with the number of records that changed it.
//
// For each record: an existing file at the record's path has its content
// replaced; an unknown path creates a new file (preferentially under a
// top-level "src" folder); a record addressing a folder is ignored. Records
// are applied sequentially, so a later record may target a path created by an
// earlier record in the same batch.
//
// A record with an empty path is a fault: remaining records are abandoned and
// the forest built so far is returned alongside the error. The caller swaps
// the returned forest in as one unit, so partial application is never visible
// externally.
func (a *Applier) Apply(files []*models.FileNode, records []protocol.ModificationRecord) ([]*models.FileNode, int, error) {
	applied := 0
	for _, rec := range records {
		if rec.Path == "" {
			return files, applied, fmt.Errorf("modification record with empty path")
		}

		if existing := FindByPath(files, rec.Path); existing != nil {
			if existing.IsFolder() {
				a.logger.Warn("modification targets a folder, ignoring", "path", rec.Path)
				continue
			}
			files = ReplaceContent(files, existing.ID, rec.Content)
			applied++
			continue
		}

		files = a.createFile(files, rec)
		applied++
	}
	return files, applied, nil
}

// createFile synthesizes a new file node for rec and inserts it under the
// top-level src folder when one exists, at the root level otherwise.
func (a *Applier) createFile(files []*models.FileNode, rec protocol.ModificationRecord) []*models.FileNode {
	name := models.BaseName(rec.Path)
	node := &models.FileNode{
		ID:       a.newID(),
		Name:     name,
		Path:     rec.Path,
		Kind:     models.KindFile,
		Content:  rec.Content,
		Language: models.LanguageForFilename(name),
	}

	parentPath := ""
	for _, f := range files {
		if f.Name == "src" && f.IsFolder() {
			parentPath = f.Path
			break
		}
	}

	a.logger.Debug("creating file from modification record",
		"path", rec.Path,
		"parent", parentPath,
	)
	return Insert(files, parentPath, node)
}
