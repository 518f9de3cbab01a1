package vcs

import "strings"

// Edit describes one contiguous hunk of change between the A (old) and B
// (new) images of a file patch. BeginB is the number of new-image lines
// that precede the edit, so the first added line (if any) is line
// BeginB+1; EndB is the 1-based number of the last added line, equal to
// BeginB for a pure deletion. LengthA/LengthB are the line counts
// removed/added by the edit.
type Edit struct {
	BeginB  int // new-image lines before the edit (0 if it starts at the top of the file)
	EndB    int // last added line in the new image, 1-based (BeginB if pure deletion)
	LengthA int // lines removed from the old image
	LengthB int // lines added to the new image
}

// Interval returns the post-image line range touched by this edit,
// [BeginB + 1, EndB], 1-based and inclusive. For a pure deletion the
// range is empty (end = start - 1).
func (e Edit) Interval() (start, end int) {
	start = e.BeginB + 1
	end = e.EndB
	if end < start {
		end = start - 1 // pure deletion: empty interval, no post-image lines touched
	}
	return start, end
}

// ComputeEdits walks a FilePatch's chunk sequence and consolidates
// adjacent delete/insert runs into edits, tracking running line counters
// in both the old (A) and new (B) images. This mirrors how a unified diff
// groups a deletion immediately followed by an insertion into one hunk.
func ComputeEdits(fp FilePatch) []Edit {
	var edits []Edit
	lineA, lineB := 0, 0 // 0-based count of lines consumed so far

	for _, chunk := range fp.Chunks() {
		nLines := countLines(chunk.Content())
		switch chunk.Type() {
		case ChunkEqual:
			lineA += nLines
			lineB += nLines
		case ChunkDelete:
			edits = append(edits, Edit{
				BeginB:  lineB,
				EndB:    lineB,
				LengthA: nLines,
			})
			lineA += nLines
		case ChunkAdd:
			if merged := mergeIfAdjacent(edits, lineB); merged != -1 {
				edits[merged].LengthB += nLines
				edits[merged].EndB = lineB + nLines
			} else {
				edits = append(edits, Edit{
					BeginB:  lineB,
					EndB:    lineB + nLines,
					LengthB: nLines,
				})
			}
			lineB += nLines
		}
	}

	return edits
}

// mergeIfAdjacent returns the index of the last edit if it is a pure
// deletion ending exactly where this insertion begins (i.e. the
// delete+insert pair forms one replace hunk), or -1 otherwise.
func mergeIfAdjacent(edits []Edit, lineB int) int {
	if len(edits) == 0 {
		return -1
	}
	last := len(edits) - 1
	if edits[last].LengthB == 0 && edits[last].BeginB == lineB {
		return last
	}
	return -1
}

// countLines counts the number of lines represented by a chunk's content.
// go-git chunk content always ends in "\n" for non-final chunks; a
// trailing fragment without a newline still counts as one line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
