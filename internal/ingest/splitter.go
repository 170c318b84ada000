package ingest

import "strings"

// defaultSeparators are tried in order, so paragraph breaks are
// preferred over line breaks, sentences over words.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts text into chunks of at most chunkSize bytes, breaking
// at the coarsest boundary available and carrying overlap bytes of the
// previous chunk into the next one.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	return s.merge(s.fragment(text, defaultSeparators))
}

// fragment recursively cuts text into pieces no longer than chunkSize,
// descending to finer separators only when a piece is still too long.
func (s *Splitter) fragment(text string, separators []string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	for i, sep := range separators {
		if sep == "" {
			break
		}
		if !strings.Contains(text, sep) {
			continue
		}
		parts := strings.SplitAfter(text, sep)
		var fragments []string
		for _, part := range parts {
			fragments = append(fragments, s.fragment(part, separators[i+1:])...)
		}
		return fragments
	}
	// No separator fits, cut at the size limit.
	var fragments []string
	for len(text) > s.chunkSize {
		fragments = append(fragments, text[:s.chunkSize])
		text = text[s.chunkSize:]
	}
	if text != "" {
		fragments = append(fragments, text)
	}
	return fragments
}

// merge packs fragments back into chunks up to chunkSize, seeding each
// new chunk with the tail of the previous one.
func (s *Splitter) merge(fragments []string) []string {
	var chunks []string
	current := ""
	for _, frag := range fragments {
		if current == "" {
			current = frag
			continue
		}
		if len(current)+len(frag) <= s.chunkSize {
			current += frag
			continue
		}
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		seed := ""
		if s.overlap > 0 {
			seed = current
			if len(seed) > s.overlap {
				seed = seed[len(seed)-s.overlap:]
			}
		}
		if len(seed)+len(frag) <= s.chunkSize {
			current = seed + frag
		} else {
			current = frag
		}
	}
	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}
	return chunks
}
