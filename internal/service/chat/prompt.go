package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	models "viber/internal/domain/models/workspace"
	"viber/internal/protocol"
	"viber/internal/service/workspace"
)

const (
	// Bounded project context embedded in each prompt: the first
	// maxContextFiles files, each truncated to maxFileChars characters.
	maxContextFiles = 5
	maxFileChars    = 500
)

const promptPreamble = "You are an AI assistant that helps build applications. " +
	"You can modify files directly by providing file modifications in a specific format."

const noProjectPrompt = `You are an AI assistant that helps build applications. The user wants to: %s

Please provide helpful guidance and if they want to create files or make changes, let them know they need to create a project first.`

// BuildPrompt produces the provider prompt for one user turn: project
// identity, a depth-indented listing of the whole tree, truncated contents of
// a bounded number of files, and the protocol-format instructions the
// assistant must follow.
func BuildPrompt(userMessage string, project *models.Project) string {
	if project == nil {
		return fmt.Sprintf(noProjectPrompt, userMessage)
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Current Project: %s\n", project.Name)
	fmt.Fprintf(&b, "Type: %s\n", project.Type)
	b.WriteString("Files:\n")
	writeTreeListing(&b, project.Files, 0)
	b.WriteString("\nCurrent file contents:\n")
	writeContextFiles(&b, project.Files)
	b.WriteString("\n\nUser Request: ")
	b.WriteString(userMessage)
	b.WriteString("\n\nWhen you need to modify files, use this exact format:\n")
	b.WriteString(protocol.Encode(protocol.ModificationRecord{
		Path:    "/src/App.tsx",
		Content: "// Your complete file content here",
	}))
	b.WriteString("\n\nYou can include multiple FILE_MODIFICATION blocks for different files. " +
		"Always provide the COMPLETE file content, not just the changes.\n\n" +
		"Provide a helpful explanation of what you're doing, then include the file modifications if needed.")
	return b.String()
}

// writeTreeListing renders the tree with two-space indentation per depth
// level, marking folders and annotating files with their language tag.
func writeTreeListing(b *strings.Builder, files []*models.FileNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range files {
		if f.IsFolder() {
			fmt.Fprintf(b, "%s[dir] %s/\n", indent, f.Name)
			writeTreeListing(b, f.Children, depth+1)
			continue
		}
		lang := f.Language
		if lang == "" {
			lang = "text"
		}
		fmt.Fprintf(b, "%s[file] %s (%s)\n", indent, f.Name, lang)
	}
}

// writeContextFiles embeds the truncated contents of the first few files so
// the assistant sees what it is editing without blowing the token budget.
func writeContextFiles(b *strings.Builder, files []*models.FileNode) {
	flat := workspace.Flatten(files)
	if len(flat) > maxContextFiles {
		flat = flat[:maxContextFiles]
	}
	for i, f := range flat {
		if i > 0 {
			b.WriteString("\n\n")
		}
		content := f.Content
		marker := ""
		if len(content) > maxFileChars {
			cut := maxFileChars
			// Never split a multi-byte rune at the cut point.
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
			marker = "..."
		}
		fmt.Fprintf(b, "--- %s ---\n%s%s", f.Path, content, marker)
	}
}
