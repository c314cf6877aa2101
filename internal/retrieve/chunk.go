package retrieve

import "strings"

// chunkText splits text into overlapping chunks, preferring to break
// at a sentence boundary within the last 20% of the chunk window.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size / 2
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size

		if end < len(text) {
			searchStart := end - size/5
			for _, sep := range []string{". ", ".\n", "! ", "? ", "\n\n"} {
				if pos := strings.LastIndex(text[searchStart:end], sep); pos >= 0 {
					end = searchStart + pos + len(sep)
					break
				}
			}
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}
		// Sentence backoff can pull end below start+overlap; the window
		// must still advance.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
