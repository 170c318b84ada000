package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitterShortText(t *testing.T) {
	s := NewSplitter(100, 20)
	require.Equal(t, []string{"hello world"}, s.Split("  hello world  "))
	require.Nil(t, s.Split("   "))
	require.Nil(t, s.Split(""))
}

func TestSplitterRespectsChunkSize(t *testing.T) {
	s := NewSplitter(50, 0)
	text := strings.Repeat("alpha beta gamma delta epsilon ", 20)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 50)
		require.Equal(t, chunk, strings.TrimSpace(chunk))
	}
}

func TestSplitterPrefersParagraphBreaks(t *testing.T) {
	para1 := strings.Repeat("a", 40)
	para2 := strings.Repeat("b", 40)
	s := NewSplitter(50, 0)
	chunks := s.Split(para1 + "\n\n" + para2)
	require.Equal(t, []string{para1, para2}, chunks)
}

func TestSplitterOverlapCarriesTail(t *testing.T) {
	s := NewSplitter(12, 4)
	chunks := s.Split("aaaa bbbb cccc dddd")
	require.Equal(t, []string{"aaaa bbbb", "bbb cccc", "ccc dddd"}, chunks)
}

func TestSplitterHardCutWithoutSeparators(t *testing.T) {
	s := NewSplitter(4, 0)
	require.Equal(t, []string{"abcd", "efgh", "ij"}, s.Split("abcdefghij"))
}

func TestNewSplitterGuards(t *testing.T) {
	s := NewSplitter(0, -1)
	require.Equal(t, 1000, s.chunkSize)
	require.Equal(t, 0, s.overlap)

	s = NewSplitter(10, 10)
	require.Equal(t, 0, s.overlap)
}
