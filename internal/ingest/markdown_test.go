package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/model"
)

func TestSplitMarkdownSections(t *testing.T) {
	source := []byte(`Intro paragraph before any heading.

# Warm Up

Five minutes of light cardio.

## Stretching

Hold each stretch for thirty seconds.

### Details

Deep headings stay inside their parent section.
`)
	sections := splitMarkdownSections(source)
	require.Len(t, sections, 3)

	require.Empty(t, sections[0].Title)
	require.Equal(t, "Intro paragraph before any heading.", sections[0].Body)

	require.Equal(t, "Warm Up", sections[1].Title)
	require.Equal(t, "Five minutes of light cardio.", sections[1].Body)

	require.Equal(t, "Stretching", sections[2].Title)
	require.Contains(t, sections[2].Body, "Hold each stretch")
	require.Contains(t, sections[2].Body, "### Details")
}

func TestSplitMarkdownSectionsNoHeadings(t *testing.T) {
	sections := splitMarkdownSections([]byte("Just plain text.\n"))
	require.Len(t, sections, 1)
	require.Empty(t, sections[0].Title)
	require.Equal(t, "Just plain text.", sections[0].Body)

	require.Empty(t, splitMarkdownSections([]byte("   \n")))
}

func TestProcessMarkdownFile(t *testing.T) {
	store := &memStore{files: map[string]string{
		"workouts/guide.md": "# Recovery\n\nSleep at least eight hours.\n",
	}}
	ingester := NewIngester(store, nil, nil, 1000, 200)

	chunks, err := ingester.processMarkdownFile(context.Background(), "workouts/guide.md", model.DocTypeWorkout)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	chunk := chunks[0]
	require.Equal(t, "# Recovery\nSleep at least eight hours.", chunk.Text)
	require.Equal(t, "guide", chunk.Metadata.SourceFile)
	require.Equal(t, "guide", chunk.Metadata.Type)
	require.Equal(t, "Recovery", chunk.Metadata.Title)
	require.Equal(t, "all", chunk.Metadata.ExperienceLevel)
	require.Equal(t, "both", chunk.Metadata.Location)
}
