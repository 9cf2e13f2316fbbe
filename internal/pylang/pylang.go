// Package pylang provides tree-sitter plumbing for Python source analysis:
// parser construction, the compiled definition query, and text helpers.
package pylang

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

//go:embed queries/*.scm
var queryFS embed.FS

var whitespaceRe = regexp.MustCompile(`\s+`)

var (
	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
)

// Extensions lists the file suffixes treated as Python source.
var Extensions = []string{".py"}

// Language returns the tree-sitter Python language.
func Language() *sitter.Language {
	return python.GetLanguage()
}

// NewParser creates a fresh Python parser. Each goroutine must use its own
// parser (not thread-safe).
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return p
}

// DefinitionQuery returns the compiled query matching every function
// definition (safe to share across goroutines).
func DefinitionQuery() (*sitter.Query, error) {
	queryOnce.Do(func() {
		data, err := queryFS.ReadFile("queries/python.scm")
		if err != nil {
			queryErr = fmt.Errorf("reading query file: %w", err)
			return
		}
		q, err := sitter.NewQuery(data, python.GetLanguage())
		if err != nil {
			queryErr = fmt.Errorf("compiling query: %w", err)
			return
		}
		query = q
	})
	return query, queryErr
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// IsAsync reports whether a function_definition node carries the async keyword.
func IsAsync(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "async" {
			return true
		}
		// The keyword precedes "def"; stop once we hit it.
		if child.Type() == "def" {
			break
		}
	}
	return false
}

// Docstring returns the cleaned leading string literal of a function body,
// or "" if the body does not start with one.
func Docstring(body *sitter.Node, source []byte) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return CleanStringLiteral(NodeText(str, source))
}

// CleanStringLiteral strips prefix letters and quote delimiters from a Python
// string literal and trims surrounding whitespace.
func CleanStringLiteral(lit string) string {
	s := lit
	// Drop prefix letters (r, b, u, f and combinations).
	for len(s) > 0 {
		c := s[0] | 0x20 // lowercase
		if c == 'r' || c == 'b' || c == 'u' || c == 'f' {
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}
	return strings.TrimSpace(s)
}
