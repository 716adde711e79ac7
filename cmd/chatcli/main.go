// Interactive terminal client for exercising the conversation flow without
// the HTTP layer. Wires the real services, so turns hit real providers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"viber/internal/config"
	"viber/internal/service/chat"
	"viber/internal/service/gateway"
	"viber/internal/service/preview"
	"viber/internal/service/workspace"
	"viber/internal/store"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type cli struct {
	chatSvc  *chat.Service
	wsSvc    *workspace.Service
	compiler *preview.Compiler
	settings *store.SettingsStore
	scanner  *bufio.Scanner
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logFile, err := config.SetupLogFile("logs", 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	settingsStore, err := store.NewSettingsStore(cfg.SettingsPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open settings store: %v\n", err)
		os.Exit(1)
	}

	wsSvc := workspace.NewService(logger)
	chatSvc := chat.NewService(gateway.New(logger), wsSvc, workspace.NewApplier(logger), settingsStore, logger)

	c := &cli{
		chatSvc:  chatSvc,
		wsSvc:    wsSvc,
		compiler: preview.NewCompiler(logger),
		settings: settingsStore,
		scanner:  bufio.NewScanner(os.Stdin),
	}
	c.scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	fmt.Printf("%sViber chat CLI%s (provider: %s). Type /help for commands.\n\n",
		colorCyan, colorReset, settingsStore.Settings().AIProvider)
	c.run()
}

func (c *cli) run() {
	for {
		fmt.Printf("%syou>%s ", colorGreen, colorReset)
		if !c.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if !c.command(line) {
				return
			}
			continue
		}

		msg, err := c.chatSvc.SendMessage(context.Background(), line)
		if err != nil {
			fmt.Printf("%serror:%s %v\n", colorRed, colorReset, err)
			continue
		}
		fmt.Printf("\n%sassistant>%s %s\n\n", colorYellow, colorReset, msg.Content)
	}
}

// command runs one slash command; returns false to exit.
func (c *cli) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return false

	case "/help":
		fmt.Println(`  /files                 list project files
  /show <path>           print a file
  /provider <id>         switch AI provider
  /key <provider> <key>  store an API key
  /preview <out.html>    write the compiled preview document
  /quit                  exit`)

	case "/files":
		for _, f := range workspace.Flatten(c.wsSvc.Current().Files) {
			fmt.Printf("  %s (%s, %d bytes)\n", f.Path, f.Language, len(f.Content))
		}

	case "/show":
		if len(fields) < 2 {
			fmt.Println("usage: /show <path>")
			break
		}
		node, err := c.wsSvc.FileByPath(fields[1])
		if err != nil {
			fmt.Printf("%serror:%s %v\n", colorRed, colorReset, err)
			break
		}
		fmt.Println(node.Content)

	case "/provider":
		if len(fields) < 2 {
			fmt.Println("usage: /provider <id>")
			break
		}
		s := c.settings.Settings()
		s.AIProvider = fields[1]
		saved, err := c.settings.UpdateSettings(s)
		if err != nil {
			fmt.Printf("%serror:%s %v\n", colorRed, colorReset, err)
			break
		}
		fmt.Printf("provider: %s, model: %s\n", saved.AIProvider, saved.DefaultModel)

	case "/key":
		if len(fields) < 3 {
			fmt.Println("usage: /key <provider> <key>")
			break
		}
		if err := c.settings.SetCredential(fields[1], fields[2]); err != nil {
			fmt.Printf("%serror:%s %v\n", colorRed, colorReset, err)
			break
		}
		fmt.Printf("stored key for %s\n", fields[1])

	case "/preview":
		if len(fields) < 2 {
			fmt.Println("usage: /preview <out.html>")
			break
		}
		doc, err := c.compiler.Compile(c.wsSvc.Current())
		if err != nil {
			doc = c.compiler.RenderError(err.Error())
		}
		if err := os.WriteFile(fields[1], []byte(doc), 0o644); err != nil {
			fmt.Printf("%serror:%s %v\n", colorRed, colorReset, err)
			break
		}
		fmt.Printf("wrote %s\n", fields[1])

	default:
		fmt.Printf("unknown command %s, try /help\n", fields[0])
	}
	return true
}
