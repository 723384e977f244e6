package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wavetermdev/htmltoken"
)

// frame is an open element waiting for its end tag.
type frame struct {
	node   *Node
	offset int
}

type parser struct {
	src    string
	roots  []*Node
	stack  []frame
	offset int
}

// Parse parses markup text into its top-level nodes.
func Parse(text string) ([]*Node, error) {
	p := &parser{src: text}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.roots, nil
}

func (p *parser) run() error {
	iter := htmltoken.NewTokenizer(strings.NewReader(p.src))
	for {
		tokenType := iter.Next()
		// Raw must be copied before the next call to Next reuses the buffer.
		raw := string(iter.Raw())
		start := p.offset
		p.offset += len(raw)

		switch tokenType {
		case htmltoken.ErrorToken:
			if errors.Is(iter.Err(), io.EOF) {
				return p.finish()
			}
			return p.errorAt(start, iter.Err(), "tokenizer: %v", iter.Err())

		case htmltoken.TextToken:
			if raw == "" {
				continue
			}
			p.appendChild(Text(raw))

		case htmltoken.StartTagToken:
			el := elementFromToken(iter.Token(), valuedAttrs(raw))
			p.appendChild(el)
			if !IsVoidElement(el.Name) {
				p.stack = append(p.stack, frame{node: el, offset: start})
			}

		case htmltoken.SelfClosingTagToken:
			p.appendChild(elementFromToken(iter.Token(), valuedAttrs(raw)))

		case htmltoken.EndTagToken:
			name := iter.Token().Data
			if err := p.closeElement(name, start); err != nil {
				return err
			}

		case htmltoken.CommentToken:
			p.appendChild(Comment(iter.Token().Data))

		case htmltoken.DoctypeToken:
			p.appendChild(&Node{Kind: KindDoctype, Text: iter.Token().Data})
		}
	}
}

func (p *parser) appendChild(n *Node) {
	if len(p.stack) == 0 {
		p.roots = append(p.roots, n)
		return
	}
	parent := p.stack[len(p.stack)-1].node
	parent.Children = append(parent.Children, n)
}

func (p *parser) closeElement(name string, offset int) error {
	if len(p.stack) == 0 {
		if IsVoidElement(name) {
			return nil
		}
		return p.errorAt(offset, nil, "end tag </%s> without matching start tag", name)
	}
	top := p.stack[len(p.stack)-1].node
	if !endTagMatches(top.Name, name) {
		if IsVoidElement(name) {
			return nil
		}
		return p.errorAt(offset, nil, "end tag </%s> does not match open element <%s>", name, top.Name)
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

// endTagMatches reports whether end closes the element open. Component
// names are matched exactly; HTML element names ignore case.
func endTagMatches(open, end string) bool {
	if open == end {
		return true
	}
	if c := open[0]; c >= 'A' && c <= 'Z' {
		return false
	}
	return strings.EqualFold(open, end)
}

func (p *parser) finish() error {
	if len(p.stack) == 0 {
		return nil
	}
	open := p.stack[len(p.stack)-1]
	return p.errorAt(open.offset, nil, "element <%s> is never closed", open.node.Name)
}

func (p *parser) errorAt(offset int, cause error, format string, args ...any) *ParseError {
	line, col := position(p.src, offset)
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: col,
		Reason: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

// elementFromToken converts a start tag token to an element node,
// lifting class and id out of the attribute list. valued[i] reports
// whether token.Attr[i] was written with "=". For repeated attributes
// the first occurrence wins.
func elementFromToken(token htmltoken.Token, valued []bool) *Node {
	el := &Node{Kind: KindElement, Name: token.Data}
	seen := make(map[string]bool, len(token.Attr))
	for i, attr := range token.Attr {
		if attr.Key == "" || seen[attr.Key] {
			continue
		}
		seen[attr.Key] = true
		switch attr.Key {
		case "class":
			el.Classes = strings.Fields(attr.Val)
		case "id":
			el.ID = StrPtr(attr.Val)
		default:
			a := Attr{Key: attr.Key}
			if attr.Val != "" || (i < len(valued) && valued[i]) {
				a.Val = StrPtr(attr.Val)
			}
			el.Attrs = append(el.Attrs, a)
		}
	}
	return el
}

// valuedAttrs scans the raw text of a start tag and reports, for each
// attribute the tokenizer keeps, whether it has an "=" value. The scan
// follows the tokenizer's attribute states so the result lines up with
// Token().Attr.
func valuedAttrs(raw string) []bool {
	var valued []bool
	n := len(raw)
	i := 1
	for i < n && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	i = skipTagSpace(raw, i)
	for i < n && raw[i] != '>' {
		start := i
		for i < n {
			c := raw[i]
			if c == '=' && i == start {
				i++
				continue
			}
			if c == '=' || c == '/' || c == '>' || isTagSpace(c) {
				break
			}
			i++
		}
		hasKey := i > start

		hasValue := false
		i = skipTagSpace(raw, i)
		if i < n {
			switch raw[i] {
			case '/':
				i++
			case '=':
				hasValue = true
				i = skipAttrValue(raw, skipTagSpace(raw, i+1))
			}
		}
		if hasKey {
			valued = append(valued, hasValue)
		}
		i = skipTagSpace(raw, i)
	}
	return valued
}

// skipAttrValue returns the offset just past the attribute value that
// starts at i.
func skipAttrValue(raw string, i int) int {
	n := len(raw)
	if i >= n {
		return n
	}
	switch q := raw[i]; q {
	case '>':
		return i
	case '"', '\'':
		end := strings.IndexByte(raw[i+1:], q)
		if end < 0 {
			return n
		}
		return i + 1 + end + 1
	case '{':
		return skipBraceValue(raw, i+1)
	}
	for i < n && !isTagSpace(raw[i]) && raw[i] != '>' {
		i++
	}
	return i
}

// skipBraceValue skips a brace-enclosed JSON value whose opening brace
// precedes i, honoring braces inside JSON strings.
func skipBraceValue(raw string, i int) int {
	depth := 1
	inString, escaped := false, false
	for ; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inString && escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case inString && c == '"':
			inString = false
		case inString:
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(raw)
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipTagSpace(raw string, i int) int {
	for i < len(raw) && isTagSpace(raw[i]) {
		i++
	}
	return i
}

// position converts a byte offset into a 1-based line and column.
func position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = 1 + strings.Count(before, "\n")
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}
