package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	models "viber/internal/domain/models/workspace"
	"viber/internal/service/workspace"
)

func TestBuildPromptNilProject(t *testing.T) {
	prompt := BuildPrompt("make me an app", nil)

	if !strings.Contains(prompt, "make me an app") {
		t.Fatal("user message missing from prompt")
	}
	if !strings.Contains(prompt, "create a project first") {
		t.Fatal("no-project guidance missing")
	}
}

func TestBuildPromptStructure(t *testing.T) {
	project := workspace.SeedProject()
	prompt := BuildPrompt("add a header", project)

	for _, want := range []string{
		"Current Project: My React App",
		"Type: react",
		"[dir] src/",
		"  [file] App.tsx (typescript)",
		"[file] package.json (json)",
		"--- /src/App.tsx ---",
		"User Request: add a header",
		"<FILE_MODIFICATION>",
		"COMPLETE file content",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesLongFiles(t *testing.T) {
	long := strings.Repeat("x", maxFileChars+100)
	project := workspace.SeedProject()
	project.Files = append(project.Files,
		&models.FileNode{ID: "big", Name: "big.txt", Path: "/big.txt", Kind: models.KindFile, Content: long})

	prompt := BuildPrompt("hi", project)

	if strings.Contains(prompt, long) {
		t.Fatal("long file embedded untruncated")
	}
}

func TestBuildPromptTruncatesOnRuneBoundary(t *testing.T) {
	// Place a multi-byte rune straddling the truncation point; the cut must
	// back off instead of emitting a partial encoding.
	content := strings.Repeat("x", maxFileChars-1) + "日本語テキスト"
	project := workspace.SeedProject()
	project.Files = []*models.FileNode{
		{ID: "jp", Name: "jp.txt", Path: "/jp.txt", Kind: models.KindFile, Content: content},
	}

	prompt := BuildPrompt("hi", project)

	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains invalid UTF-8")
	}
	if !strings.Contains(prompt, "...") {
		t.Fatal("truncation marker missing")
	}
}

func TestBuildPromptBoundsContextFiles(t *testing.T) {
	project := workspace.SeedProject()
	for i := 0; i < maxContextFiles+3; i++ {
		name := string(rune('a'+i)) + ".txt"
		project.Files = append(project.Files, &models.FileNode{
			ID: name, Name: name, Path: "/" + name, Kind: models.KindFile, Content: "body-" + name,
		})
	}

	prompt := BuildPrompt("hi", project)

	headers := strings.Count(prompt, "--- /")
	if headers != maxContextFiles {
		t.Fatalf("embedded %d files, want %d", headers, maxContextFiles)
	}
}
