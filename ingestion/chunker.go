package ingestion

import "strings"

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Split breaks text into chunks of at most size characters. Lines are
// accumulated greedily (joined with "\n", blank lines dropped); when the next
// line would overflow the current chunk, the chunk is closed and the next one
// is seeded with its trailing overlap characters so context survives the
// boundary. A single line longer than size is hard-split into size-character
// pieces carrying the same overlap.
//
// Size and overlap count runes, never bytes, so boundaries cannot land inside
// a multi-byte character.
//
// Invariants: every chunk is at most size characters, and each chunk after
// the first begins with the previous chunk's trailing overlap characters (the
// whole previous chunk when it is shorter than overlap).
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	chunks := make([]string, 0)
	current := make([]rune, 0, size)

	seed := func(from int) {
		rest := make([]rune, len(current)-from)
		copy(rest, current[from:])
		current = rest
	}

	emit := func() {
		chunks = append(chunks, string(current))
		if overlap == 0 {
			current = current[:0]
			return
		}
		if len(current) > overlap {
			seed(len(current) - overlap)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		runes := []rune(line)
		if len(current) > 0 && len(current)+1+len(runes) > size {
			emit()
		}

		if len(current) > 0 {
			current = append(current, '\n')
		}
		current = append(current, runes...)

		for len(current) > size {
			chunks = append(chunks, string(current[:size]))
			seed(size - overlap)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, string(current))
	}

	return chunks
}
