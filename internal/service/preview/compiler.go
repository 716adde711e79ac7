// Package preview compiles a project tree into a self-contained sandbox HTML
// document. The document carries its own runtime from CDNs and transpiles the
// entry component in the browser, so the server never executes project code.
package preview

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	models "viber/internal/domain/models/workspace"
	"viber/internal/service/workspace"
)

const stylesPath = "/src/index.css"

// entryCandidates are tried in order against flattened file names.
var entryCandidates = []string{"App.tsx", "App.jsx"}

// ErrEntryNotFound is returned when the tree holds no entry component.
var ErrEntryNotFound = errors.New("No App component found")

var (
	importLineRE = regexp.MustCompile(`(?m)^import .*$`)
	exportLineRE = regexp.MustCompile(`(?m)export\s+default\s+\w+;?\s*$`)
	blankRunsRE  = regexp.MustCompile(`\n{3,}`)
)

// Compiler builds preview documents from project trees.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler creates a Compiler.
func NewCompiler(logger *slog.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile produces the preview document for the project. The same tree always
// yields the same document. A missing entry component is the only error case.
func (c *Compiler) Compile(project *models.Project) (string, error) {
	if project == nil {
		return "", ErrEntryNotFound
	}

	entry := findEntry(project.Files)
	if entry == nil {
		return "", ErrEntryNotFound
	}

	css := defaultCSS
	if styles := workspace.FindByPath(project.Files, stylesPath); styles != nil && !styles.IsFolder() {
		css = styles.Content
	}

	component := prepareComponentCode(entry.Content)
	c.logger.Debug("compiled preview", "entry", entry.Path, "bytes", len(component))

	doc := strings.Replace(documentTemplate, stylesPlaceholder, css, 1)
	doc = strings.Replace(doc, componentPlaceholder, component, 1)
	return doc, nil
}

// RenderError produces a standalone document that displays the message. Used
// when compilation fails so the preview surface still shows something useful.
func (c *Compiler) RenderError(message string) string {
	return strings.Replace(errorDocumentTemplate, messagePlaceholder, htmlEscape(message), 1)
}

// findEntry searches the flattened tree for the first candidate entry name.
func findEntry(files []*models.FileNode) *models.FileNode {
	flat := workspace.Flatten(files)
	for _, name := range entryCandidates {
		for _, f := range flat {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

// prepareComponentCode strips module syntax the in-browser transpiler cannot
// resolve. Import lines are dropped whole; the default export marker is
// removed so the component identifier stays referencable as a plain binding.
func prepareComponentCode(source string) string {
	out := importLineRE.ReplaceAllString(source, "")
	out = exportLineRE.ReplaceAllString(out, "")
	out = blankRunsRE.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
