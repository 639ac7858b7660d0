package render

import (
	"strings"
)

// Measure returns the rendered width of s in the caller's unit.
type Measure func(s string) float64

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// WrapText breaks text into lines no wider than width, following the
// preview's pre-wrap rules. Explicit newlines, leading indentation and
// runs of inner spaces are kept. The space at a wrap point is dropped
// and trailing spaces are trimmed. Words are packed greedily and a word
// wider than the line is split at rune boundaries. The result depends
// only on the inputs.
func WrapText(text string, width float64, measure Measure) []string {
	text = normalizeNewlines(text)
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		segs := splitSegments(para)
		if len(segs) == 0 {
			lines = append(lines, "")
			continue
		}
		line, open := "", false
		for i, seg := range segs {
			gap := seg.gap
			if !open && i > 0 {
				gap = ""
			}
			if candidate := line + gap + seg.word; measure(candidate) <= width {
				line, open = candidate, true
				continue
			}
			if open {
				lines = append(lines, line)
				line, open = "", false
			}
			if measure(seg.word) <= width {
				line, open = seg.word, true
				continue
			}
			chunks := breakWord(seg.word, width, measure)
			lines = append(lines, chunks[:len(chunks)-1]...)
			line, open = chunks[len(chunks)-1], true
		}
		lines = append(lines, line)
	}
	return lines
}

// segment is a word with the spaces in front of it.
type segment struct {
	gap  string
	word string
}

func splitSegments(para string) []segment {
	para = strings.TrimRight(strings.ReplaceAll(para, "\t", strings.Repeat(" ", tabWidth)), " ")
	var segs []segment
	for i := 0; i < len(para); {
		j := i
		for j < len(para) && para[j] == ' ' {
			j++
		}
		k := j
		for k < len(para) && para[k] != ' ' {
			k++
		}
		segs = append(segs, segment{gap: para[i:j], word: para[j:k]})
		i = k
	}
	return segs
}

// breakWord splits a word into the longest prefixes that fit. Every chunk
// holds at least one rune so the loop always advances.
func breakWord(word string, width float64, measure Measure) []string {
	runes := []rune(word)
	var out []string
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && measure(string(runes[:n+1])) <= width {
			n++
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}
