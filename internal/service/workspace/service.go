package workspace

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"viber/internal/domain"
	models "viber/internal/domain/models/workspace"
)

// Service is the single holder of the current project. All tree mutations go
// through it and are expressed as whole-tree swaps under one mutex, so every
// reader gets a complete, never-partial snapshot.
type Service struct {
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	project *models.Project
}

// NewService creates the holder, seeded with the sample project.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger:  logger,
		now:     time.Now,
		project: SeedProject(),
	}
}

// Current returns the current project snapshot. Callers must treat it as
// read-only; it may be replaced wholesale at any time.
func (s *Service) Current() *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// Swap installs files as the current project's tree and bumps LastModified.
// It returns the new snapshot.
func (s *Service) Swap(files []*models.FileNode) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = s.project.WithFiles(files, s.now())
	return s.project
}

// UpdateFile replaces the content of the file with the given ID (the direct
// user-edit path from the code editor) and returns the new snapshot.
func (s *Service) UpdateFile(id, content string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := FindByID(s.project.Files, id)
	if node == nil {
		return nil, fmt.Errorf("%w: file %q", domain.ErrNotFound, id)
	}
	if node.IsFolder() {
		return nil, fmt.Errorf("%w: %q is a folder", domain.ErrValidation, node.Path)
	}

	s.project = s.project.WithFiles(ReplaceContent(s.project.Files, id, content), s.now())
	s.logger.Debug("file updated", "id", id, "path", node.Path)
	return s.project, nil
}

// FileByPath returns the file node at path from the current snapshot.
func (s *Service) FileByPath(path string) (*models.FileNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := FindByPath(s.project.Files, path)
	if node == nil {
		return nil, fmt.Errorf("%w: file %q", domain.ErrNotFound, path)
	}
	return node, nil
}
