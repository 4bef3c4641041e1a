package browse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/fbxtree/fbx"
)

// ctrlCommands are the available command-mode commands.
var ctrlCommands = []string{"help", "list", "select", "clear", "quit"}

// isPathBoundary reports whether r separates node names in a path.
func isPathBoundary(r rune) bool { return string(r) == fbx.PathSeparator }

// wordBounds returns the word at the cursor position and its byte boundaries
// within input, where words are delimited by runes satisfying isBoundary.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(
	input string,
	cursor int,
	isBoundary func(rune) bool,
) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// parentPath returns the path leading up to the segment starting at
// wordStart. For input "Objects/Model/Ver" with the word "Ver", the parent
// path is "Objects/Model". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	return strings.TrimRight(input[:wordStart], fbx.PathSeparator)
}

// childCandidates returns the distinct names of the children of the node at
// parent, in source order. An empty parent yields the top-level names.
func childCandidates(doc *fbx.Document, parent string) []string {
	nodes := doc.Nodes

	if parent != "" {
		node, ok := doc.FindNode(parent)
		if !ok {
			return nil
		}

		nodes = node.Nodes
	}

	seen := make(map[string]struct{}, len(nodes))
	names := make([]string, 0, len(nodes))

	for _, n := range nodes {
		if _, dup := seen[n.Name]; dup {
			continue
		}

		seen[n.Name] = struct{}{}
		names = append(names, n.Name)
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. When the current word is empty at the top level, it returns nil
// matches. When the word is empty after a separator, it returns all children
// as matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	if m.mode == modeCtrl {
		word, ws, we := wordBounds(input, cursor, unicode.IsSpace)

		// Only the command name itself is completed.
		if word == "" || strings.TrimSpace(input[:ws]) != "" {
			return nil, nil, ws, we
		}

		return fuzzy.Find(word, ctrlCommands), ctrlCommands, ws, we
	}

	word, ws, we := wordBounds(input, cursor, isPathBoundary)
	wordStart, wordEnd = ws, we

	parent := parentPath(input, wordStart)
	candidates = childCandidates(m.doc, parent)

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	// When the word is empty at the top level, don't show completions
	// (allows the hint text to be visible). After a separator, show all
	// children immediately so the user can browse the available members.
	if word == "" {
		if parent == "" {
			return nil, nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchStyle
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
