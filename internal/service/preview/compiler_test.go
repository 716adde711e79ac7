package preview

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	models "viber/internal/domain/models/workspace"
	"viber/internal/service/workspace"
)

func testCompiler() *Compiler {
	return NewCompiler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCompileSeedProject(t *testing.T) {
	doc, err := testCompiler().Compile(workspace.SeedProject())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, want := range []string{
		"react-dom@18",
		"babel.min.js",
		"cdn.tailwindcss.com",
		"class ErrorBoundary",
		"Compilation Error",
		"function App",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if strings.Contains(doc, stylesPlaceholder) || strings.Contains(doc, componentPlaceholder) {
		t.Fatal("placeholder left in document")
	}
}

func TestCompileStripsModuleSyntax(t *testing.T) {
	project := &models.Project{
		Files: []*models.FileNode{
			{
				ID: "app", Name: "App.jsx", Path: "/App.jsx", Kind: models.KindFile,
				Content: "import React from 'react';\nimport { x } from './x';\n\nfunction App() { return null; }\n\nexport default App;\n",
			},
		},
	}

	doc, err := testCompiler().Compile(project)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if strings.Contains(doc, "import React") || strings.Contains(doc, "from './x'") {
		t.Fatal("import lines survived")
	}
	if strings.Contains(doc, "export default") {
		t.Fatal("export default survived")
	}
	if !strings.Contains(doc, "function App() { return null; }") {
		t.Fatal("component body lost")
	}
}

func TestCompilePrefersTSXEntry(t *testing.T) {
	project := &models.Project{
		Files: []*models.FileNode{
			{ID: "jsx", Name: "App.jsx", Path: "/App.jsx", Kind: models.KindFile, Content: "const jsxMarker = 1;"},
			{ID: "tsx", Name: "App.tsx", Path: "/App.tsx", Kind: models.KindFile, Content: "const tsxMarker = 1;"},
		},
	}

	doc, err := testCompiler().Compile(project)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(doc, "tsxMarker") || strings.Contains(doc, "jsxMarker") {
		t.Fatal("App.tsx must win over App.jsx")
	}
}

func TestCompileUsesProjectStyles(t *testing.T) {
	project := workspace.SeedProject()
	node := workspace.FindByPath(project.Files, "/src/index.css")
	project.Files = workspace.ReplaceContent(project.Files, node.ID, ".custom-marker { color: red; }")

	doc, err := testCompiler().Compile(project)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(doc, ".custom-marker") {
		t.Fatal("project stylesheet not embedded")
	}
}

func TestCompileMissingEntry(t *testing.T) {
	project := &models.Project{
		Files: []*models.FileNode{
			{ID: "x", Name: "main.ts", Path: "/main.ts", Kind: models.KindFile, Content: "x"},
		},
	}

	_, err := testCompiler().Compile(project)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestCompileDeterministic(t *testing.T) {
	project := workspace.SeedProject()
	c := testCompiler()

	a, err := c.Compile(project)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := c.Compile(project)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if a != b {
		t.Fatal("same tree produced different documents")
	}
}

func TestRenderErrorEscapes(t *testing.T) {
	doc := testCompiler().RenderError(`<script>alert("x")</script>`)

	if strings.Contains(doc, "<script>alert") {
		t.Fatal("message not escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Fatal("escaped message missing")
	}
}
