package integrations

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

// EPubBuilder compiles a story's episodes into a single EPub file for
// offline reading, pulling every message page from the API.
type EPubBuilder struct {
	client    *api.Client
	outputDir string
}

func NewEPubBuilder(client *api.Client, outputDir string) *EPubBuilder {
	if outputDir == "" {
		outputDir, _ = os.MkdirTemp("", "storyline-epub-*")
	}
	return &EPubBuilder{client: client, outputDir: outputDir}
}

// ExportStory fetches the story, its episodes and all of their messages, and
// writes <title>.epub. Returns the written path.
func (p *EPubBuilder) ExportStory(ctx context.Context, storyID int) (string, error) {
	story, err := p.client.GetStory(ctx, storyID)
	if err != nil {
		return "", fmt.Errorf("failed to load story: %w", err)
	}

	episodes, err := p.client.ListEpisodes(ctx, storyID)
	if err != nil {
		return "", fmt.Errorf("failed to load episodes: %w", err)
	}
	if len(episodes) == 0 {
		return "", fmt.Errorf("story has no episodes to export")
	}

	e, err := epub.NewEpub(story.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor(story.Author.Username)
	if story.Description != "" {
		e.SetDescription(story.Description)
	}
	e.SetLang("en")

	for _, episode := range episodes {
		if err := p.addEpisode(ctx, e, episode); err != nil {
			return "", fmt.Errorf("failed to add episode %q: %w", episode.Title, err)
		}
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(p.outputDir, sanitizeFilename(story.Title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

// addEpisode pages through the episode's timeline and renders it as one
// section.
func (p *EPubBuilder) addEpisode(ctx context.Context, e *epub.Epub, episode data.Episode) error {
	var messages []data.Message
	nextURL := ""
	for {
		page, err := p.client.ListMessages(ctx, episode.ID, 0, nextURL)
		if err != nil {
			return err
		}
		messages = append(messages, page.Results...)
		if page.Links.Next == nil {
			break
		}
		nextURL = *page.Links.Next
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(episode.Title)))
	for _, message := range messages {
		b.WriteString(p.renderMessage(e, message))
	}

	_, err := e.AddSection(b.String(), episode.Title, "", "")
	return err
}

func (p *EPubBuilder) renderMessage(e *epub.Epub, message data.Message) string {
	speaker := ""
	if message.Character != nil {
		speaker = message.Character.Name
	}

	switch message.MessageType {
	case data.MessageStatus:
		return fmt.Sprintf("<p><em>%s</em></p>\n", html.EscapeString(message.StatusContent))
	case data.MessageImage:
		if message.ImageContent == nil {
			return ""
		}
		// go-epub downloads remote sources and embeds the bytes.
		internal, err := e.AddImage(*message.ImageContent, "")
		if err != nil {
			return fmt.Sprintf("<p><strong>%s</strong> sent an image</p>\n", html.EscapeString(speaker))
		}
		return fmt.Sprintf("<p><strong>%s</strong></p><img src=%q alt=\"image message\"/>\n",
			html.EscapeString(speaker), internal)
	case data.MessageAudio, data.MessageVideo:
		return fmt.Sprintf("<p><strong>%s</strong> sent a %s message</p>\n",
			html.EscapeString(speaker), message.MessageType)
	default:
		return fmt.Sprintf("<p><strong>%s:</strong> %s</p>\n",
			html.EscapeString(speaker), html.EscapeString(message.TextContent))
	}
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	safe := strings.TrimSpace(replacer.Replace(name))
	if safe == "" {
		safe = "story"
	}
	return safe
}
