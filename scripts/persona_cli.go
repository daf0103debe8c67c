package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"inkwell/internal/config"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/services"
	"inkwell/internal/personas"
	"inkwell/internal/service/llm"
)

// Interactive CLI for trying out reader personas without running the
// server or a database. Pick a persona, paste a post, see the generated
// comment, then keep replying as the blog author to continue the
// thread.
//
// Usage: go run scripts/persona_cli.go
// Set LLM_PROVIDER=lorem for offline mode (no API key needed).

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type cli struct {
	scanner   *bufio.Scanner
	generator services.CommentGenerator
	builtins  *personas.Registry
}

// newQuietLogger keeps structured log output out of the interactive
// session.
func newQuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newQuietLogger()

	builtins, err := personas.NewRegistry()
	if err != nil {
		fmt.Printf("%s❌ Failed to load personas: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	registry, err := llm.SetupProviders(cfg, logger)
	if err != nil {
		fmt.Printf("%s❌ Failed to setup providers: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	c := &cli{
		scanner:   bufio.NewScanner(os.Stdin),
		generator: llm.NewGenerator(registry, cfg, logger),
		builtins:  builtins,
	}
	c.scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	fmt.Printf("%s=== Reader Persona CLI ===%s\n", colorCyan, colorReset)
	fmt.Printf("Provider: %s, Model: %s\n\n", cfg.LLMProvider, cfg.LLMModel)

	persona := c.pickPersona()
	post := c.readPost()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	comment, err := c.generator.GenerateComment(ctx, persona, post)
	cancel()
	if err != nil {
		fmt.Printf("%s❌ Generation failed: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	fmt.Printf("\n%s%s:%s %s\n", colorGreen, persona.Name, colorReset, comment)

	// Continue the thread: each author reply gets a persona reply
	thread := []models.Comment{{
		ID:      "t-0",
		PostID:  "local",
		Author:  persona.Author(),
		Content: comment,
	}}

	for {
		fmt.Printf("\n%sYour reply (empty to quit):%s ", colorBlue, colorReset)
		if !c.scanner.Scan() {
			return
		}
		input := strings.TrimSpace(c.scanner.Text())
		if input == "" {
			return
		}

		parentID := thread[len(thread)-1].ID
		thread = append(thread, models.Comment{
			ID:              fmt.Sprintf("t-%d", len(thread)),
			PostID:          "local",
			ParentCommentID: &parentID,
			Author:          &models.CommentAuthor{Type: models.AuthorTypeUser, ID: "author"},
			Content:         input,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		reply, err := c.generator.GenerateReply(ctx, persona, post, thread)
		cancel()
		if err != nil {
			fmt.Printf("%s❌ Generation failed: %v%s\n", colorRed, err, colorReset)
			return
		}

		fmt.Printf("\n%s%s:%s %s\n", colorGreen, persona.Name, colorReset, reply)

		lastID := thread[len(thread)-1].ID
		thread = append(thread, models.Comment{
			ID:              fmt.Sprintf("t-%d", len(thread)),
			PostID:          "local",
			ParentCommentID: &lastID,
			Author:          persona.Author(),
			Content:         reply,
		})
	}
}

func (c *cli) pickPersona() *models.Persona {
	list := c.builtins.List()

	fmt.Println("Built-in personas:")
	for i, p := range list {
		fmt.Printf("  %s%d%s. %s - %s\n", colorYellow, i+1, colorReset, p.Name, p.Backstory)
	}

	for {
		fmt.Printf("\nPick a persona [1-%d]: ", len(list))
		if !c.scanner.Scan() {
			os.Exit(0)
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.scanner.Text()))
		if err == nil && n >= 1 && n <= len(list) {
			return list[n-1]
		}
		fmt.Printf("%sInvalid choice%s\n", colorRed, colorReset)
	}
}

func (c *cli) readPost() *models.Post {
	fmt.Printf("\nPost title: ")
	if !c.scanner.Scan() {
		os.Exit(0)
	}
	title := strings.TrimSpace(c.scanner.Text())

	fmt.Println("Post body (finish with a single '.' on its own line):")
	var lines []string
	for c.scanner.Scan() {
		line := c.scanner.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}

	return &models.Post{
		ID:       "local",
		Title:    title,
		Body:     strings.Join(lines, "\n"),
		Slug:     "local",
		AuthorID: "author",
	}
}
