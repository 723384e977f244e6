package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the decoded metadata block of a document.
type Frontmatter map[string]any

// String returns the value for key if it is a string.
func (f Frontmatter) String(key string) (string, bool) {
	v, ok := f[key].(string)
	return v, ok
}

const frontmatterDelim = "---"

// SplitFrontmatter separates the front-matter block from the markdown body.
// Sources without front-matter return an empty Frontmatter and the source
// unchanged.
func SplitFrontmatter(source string) (Frontmatter, string, error) {
	first, rest, found := cutLine(source)
	if !isDelimLine(first, frontmatterDelim) {
		return Frontmatter{}, source, nil
	}
	if !found {
		return nil, "", &CompileError{Line: 1, Reason: ReasonUnterminatedFrontmatter}
	}

	var block strings.Builder
	line := 1
	for {
		var cur string
		cur, rest, found = cutLine(rest)
		line++
		if isDelimLine(cur, frontmatterDelim) || isDelimLine(cur, "...") {
			break
		}
		if !found {
			return nil, "", &CompileError{Line: 1, Reason: ReasonUnterminatedFrontmatter}
		}
		block.WriteString(cur)
		block.WriteByte('\n')
	}

	fm := Frontmatter{}
	if strings.TrimSpace(block.String()) != "" {
		if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
			return nil, "", &CompileError{Line: 2, Reason: ReasonInvalidFrontmatter, Err: err}
		}
		if fm == nil {
			fm = Frontmatter{}
		}
	}
	return fm, rest, nil
}

// cutLine splits s at the first newline. found reports whether a newline
// was present; the returned line never includes the line terminator.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}

func isDelimLine(line, delim string) bool {
	return strings.TrimRight(line, " \t") == delim
}
