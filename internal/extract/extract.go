// Package extract parses Python source files and builds one FunctionRecord
// per qualifying function definition.
package extract

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/domain"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
	"github.com/orchestrate-solutions/bird-bone-ai/internal/pylang"
)

// reservedNames are configuration/entry-point functions excluded when they
// take no parameters.
var reservedNames = map[string]struct{}{
	"setup":     {},
	"configure": {},
	"main":      {},
	"__main__":  {},
}

// Extractor extracts function metadata from Python files. Not safe for
// concurrent use; each goroutine must use its own Extractor.
type Extractor struct {
	parser *sitter.Parser
	query  *sitter.Query
}

// New creates an Extractor with a fresh parser and the shared compiled query.
func New() (*Extractor, error) {
	q, err := pylang.DefinitionQuery()
	if err != nil {
		return nil, err
	}
	return &Extractor{parser: pylang.NewParser(), query: q}, nil
}

// File parses one candidate file and returns its function records keyed by
// qualified name, plus the number of qualified-name collisions (later
// definitions overwrite earlier ones). A file that does not parse returns a
// parse_error instead of aborting the batch.
func (e *Extractor) File(f model.SourceFile, src []byte) (map[string]model.FunctionRecord, int, *model.Error) {
	tree, err := e.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, 0, &model.Error{Kind: model.ParseError, Path: f.RelPath, Message: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, 0, &model.Error{Kind: model.ParseError, Path: f.RelPath, Message: "syntax error"}
	}

	modPath := modulePath(f.RelPath)

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(e.query, root)

	funcs := make(map[string]model.FunctionRecord)
	collisions := 0

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			node := c.Node
			if node.Type() != "function_definition" {
				continue
			}
			rec, ok := e.functionRecord(node, f, modPath, src)
			if !ok {
				continue
			}
			if _, dup := funcs[rec.QualifiedName]; dup {
				collisions++
			}
			funcs[rec.QualifiedName] = rec
		}
	}

	return funcs, collisions, nil
}

// functionRecord builds the metadata record for one definition node.
// Returns ok=false when the function is filtered out.
func (e *Extractor) functionRecord(node *sitter.Node, f model.SourceFile, modPath string, src []byte) (model.FunctionRecord, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return model.FunctionRecord{}, false
	}
	name := pylang.NodeText(nameNode, src)

	params, defaults, hints := parameters(node.ChildByFieldName("parameters"), src)

	if !includeFunction(name, f.Path, len(params)) {
		return model.FunctionRecord{}, false
	}

	doc := pylang.Docstring(node.ChildByFieldName("body"), src)

	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1
	if endLine < startLine {
		// Known approximation when the end position is unusable.
		endLine = startLine + 10
	}

	return model.FunctionRecord{
		Name:           name,
		QualifiedName:  modPath + "." + name,
		ModulePath:     modPath,
		FilePath:       f.RelPath,
		IsAsync:        pylang.IsAsync(node),
		ParameterNames: params,
		DefaultCount:   defaults,
		Docstring:      doc,
		ReturnType:     returnType(node, src),
		TypeHints:      hints,
		Complexity:     complexity(node),
		Domain:         domain.Classify(name, doc),
		Dependencies:   dependencies(node, src),
		StartLine:      startLine,
		EndLine:        endLine,
	}, true
}

// includeFunction applies the inclusion filter: conventionally private
// single-underscore names are excluded (dunder names are not), files under a
// bytecode cache are excluded, and reserved zero-parameter entry points are
// excluded.
func includeFunction(name, path string, paramCount int) bool {
	if strings.HasPrefix(name, "_") && !strings.HasPrefix(name, "__") {
		return false
	}
	if strings.Contains(path, "__pycache__") {
		return false
	}
	if _, reserved := reservedNames[name]; reserved && paramCount == 0 {
		return false
	}
	return true
}

// modulePath converts a root-relative file path into a dotted module path.
func modulePath(rel string) string {
	s := filepath.ToSlash(rel)
	s = strings.TrimSuffix(s, ".py")
	return strings.ReplaceAll(s, "/", ".")
}

// parameters collects parameter identifiers in declaration order, the count
// of parameters carrying defaults, and type hints for annotated parameters.
// Splat forms (*args, **kwargs) and bare separators are not collected.
func parameters(node *sitter.Node, src []byte) ([]string, int, map[string]string) {
	if node == nil {
		return nil, 0, nil
	}

	var names []string
	defaults := 0
	var hints map[string]string

	addHint := func(name string, typeNode *sitter.Node) {
		if hints == nil {
			hints = make(map[string]string)
		}
		text := ""
		if typeNode != nil {
			text = pylang.CollapseWhitespace(pylang.NodeText(typeNode, src))
		}
		if text == "" {
			// Degrade to a placeholder rather than dropping the entry.
			text = "Any"
		}
		hints[name] = text
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			names = append(names, pylang.NodeText(child, src))
		case "typed_parameter":
			id := firstIdentifier(child)
			if id == nil {
				continue
			}
			name := pylang.NodeText(id, src)
			names = append(names, name)
			addHint(name, child.ChildByFieldName("type"))
		case "default_parameter":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil || nameNode.Type() != "identifier" {
				continue
			}
			names = append(names, pylang.NodeText(nameNode, src))
			defaults++
		case "typed_default_parameter":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := pylang.NodeText(nameNode, src)
			names = append(names, name)
			defaults++
			addHint(name, child.ChildByFieldName("type"))
		}
	}

	return names, defaults, hints
}

func firstIdentifier(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "identifier" {
			return child
		}
	}
	return nil
}

// returnType renders the declared return annotation, or "" if absent.
func returnType(node *sitter.Node, src []byte) string {
	rt := node.ChildByFieldName("return_type")
	if rt == nil {
		return ""
	}
	return pylang.CollapseWhitespace(pylang.NodeText(rt, src))
}

// complexity performs a flat census of the whole definition subtree. Nested
// definitions contribute to their enclosing function's counters as well as
// their own.
func complexity(node *sitter.Node) model.Complexity {
	var c model.Complexity
	walk(node, func(n *sitter.Node) {
		switch n.Type() {
		case "if_statement", "elif_clause", "conditional_expression":
			c.Conditions++
		case "for_statement", "while_statement", "list_comprehension", "dictionary_comprehension":
			c.Loops++
		case "try_statement", "except_clause":
			c.TryExcept++
		case "call":
			c.FunctionCalls++
		case "return_statement":
			c.Returns++
		}
	})
	return c
}

// dependencies returns the deduplicated, sorted base identifiers of
// receiver.method() call targets inside the function body. Calls not in
// attribute form are ignored.
func dependencies(node *sitter.Node, src []byte) []string {
	seen := make(map[string]struct{})
	walk(node, func(n *sitter.Node) {
		if n.Type() != "call" {
			return
		}
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "attribute" {
			return
		}
		obj := fn.ChildByFieldName("object")
		if obj == nil || obj.Type() != "identifier" {
			return
		}
		seen[pylang.NodeText(obj, src)] = struct{}{}
	})
	if len(seen) == 0 {
		return nil
	}
	deps := make([]string, 0, len(seen))
	for d := range seen {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps
}

// walk visits every named node in the subtree, including the root.
func walk(node *sitter.Node, fn func(*sitter.Node)) {
	fn(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), fn)
	}
}
