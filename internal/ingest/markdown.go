package ingest

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/avverma/fitrag/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type markdownSection struct {
	Title string
	Body  string
}

// processMarkdownFile ingests a markdown guide, one section per h1/h2
// heading. Guides carry permissive metadata so they surface for every
// profile.
func (g *Ingester) processMarkdownFile(ctx context.Context, key, docType string) ([]model.KnowledgeChunk, error) {
	rc, err := g.store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	source := fileStem(key)
	ingestedAt := time.Now().UTC().Format(time.RFC3339)
	var chunks []model.KnowledgeChunk
	for idx, section := range splitMarkdownSections(data) {
		title := section.Title
		if title == "" {
			title = source
		}
		content := "# " + title + "\n" + section.Body
		for chunkIdx, piece := range g.splitter.Split(content) {
			metadata := model.ChunkMetadata{
				SourceFile:      source,
				DocType:         docType,
				Type:            "guide",
				Title:           title,
				ExperienceLevel: "all",
				Location:        "both",
				DietaryType:     "all",
				Goal:            "general",
				ChunkIndex:      chunkIdx,
				IngestedAt:      ingestedAt,
			}
			chunks = append(chunks, model.KnowledgeChunk{
				ID:       chunkID(source, idx, chunkIdx),
				Text:     piece,
				Metadata: metadata,
			})
		}
	}
	return chunks, nil
}

// splitMarkdownSections slices a document at its h1/h2 headings. Text
// before the first heading becomes an untitled leading section.
func splitMarkdownSections(source []byte) []markdownSection {
	type mark struct {
		title        string
		lineStart    int
		contentStart int
	}

	parser := goldmark.New().Parser()
	doc := parser.Parse(text.NewReader(source))

	var marks []mark
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level > 2 || heading.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		seg := heading.Lines().At(0)
		lineStart := seg.Start
		if i := bytes.LastIndexByte(source[:seg.Start], '\n'); i >= 0 {
			lineStart = i + 1
		} else {
			lineStart = 0
		}
		marks = append(marks, mark{
			title:        strings.TrimSpace(string(source[seg.Start:seg.Stop])),
			lineStart:    lineStart,
			contentStart: seg.Stop,
		})
		return ast.WalkSkipChildren, nil
	})

	var sections []markdownSection
	if len(marks) == 0 {
		if body := strings.TrimSpace(string(source)); body != "" {
			sections = append(sections, markdownSection{Body: body})
		}
		return sections
	}
	if lead := strings.TrimSpace(string(source[:marks[0].lineStart])); lead != "" {
		sections = append(sections, markdownSection{Body: lead})
	}
	for i, m := range marks {
		end := len(source)
		if i+1 < len(marks) {
			end = marks[i+1].lineStart
		}
		sections = append(sections, markdownSection{
			Title: m.title,
			Body:  strings.TrimSpace(string(source[m.contentStart:end])),
		})
	}
	return sections
}
