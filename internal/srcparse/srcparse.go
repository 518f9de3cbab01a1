// Package srcparse is the source-parser capability consumed by the
// method-history extractor (spec §6): parse Java source text, walk for
// decision points, and find callables with their canonical signature and
// line range. Grounded on the teacher's multi-language pkg/parser/
// pkg/analyzer/complexity, narrowed to the one language the mining
// pipeline targets (spec §4.4: "the source-language suffix is the only
// knob").
package srcparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Callable is one parsed method or constructor declaration.
type Callable struct {
	// Signature is the parser's canonical rendering: the declaration text
	// up to (not including) its body, whitespace-collapsed. Spec §3:
	// "signature is the parser's canonical rendering."
	Signature string
	// BeginLine and EndLine are 1-based, inclusive.
	BeginLine int
	EndLine   int
	// ParameterCount is the number of declared parameters (spec §4.8).
	ParameterCount int
	// DecisionPoints is the count of AST nodes in {if, for, while, do,
	// switch-case-entry, catch-clause, ternary-conditional} reachable
	// under the callable's body (spec §4.8's CyclomaticComplexity
	// definition, minus the leading 1).
	DecisionPoints int
}

// AST is a parsed compilation unit.
type AST struct {
	tree   *sitter.Tree
	source []byte
}

// ErrParseFailure is returned when tree-sitter cannot produce a usable
// tree. Callers treat this as non-fatal per spec §7 (ParseFailure: "Skip
// file, warn; method-less").
var ErrParseFailure = fmt.Errorf("srcparse: parse failure")

// Parse parses Java source text into an AST.
func Parse(source []byte) (*AST, error) {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, ErrParseFailure
	}
	return &AST{tree: tree, source: source}, nil
}

// decisionNodeTypes are the AST node types counted for cyclomatic
// complexity (spec §4.8): if, for, while, do, switch-case-entry,
// catch-clause, ternary-conditional.
var decisionNodeTypes = map[string]bool{
	"if_statement":                  true,
	"for_statement":                 true,
	"enhanced_for_statement":        true,
	"while_statement":                true,
	"do_statement":                  true,
	"switch_block_statement_group":  true,
	"switch_rule":                   true,
	"catch_clause":                  true,
	"ternary_expression":            true,
}

var callableNodeTypes = map[string]bool{
	"method_declaration":      true,
	"constructor_declaration": true,
}

// Visitor is invoked for every node under the walked subtree; returning
// false skips the node's children.
type Visitor func(nodeType string) bool

// Walk visits every node reachable under the AST's root, matching the
// "AST.walk(visitor)" capability of spec §6.
func (a *AST) Walk(visit Visitor) {
	walk(a.tree.RootNode(), visit)
}

func walk(node *sitter.Node, visit Visitor) {
	if node == nil {
		return
	}
	if !visit(node.Type()) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

// CountDecisionPoints counts nodes in decisionNodeTypes reachable under
// node (spec §4.8's CyclomaticComplexity definition, minus the leading 1).
func CountDecisionPoints(node *sitter.Node) int {
	count := 0
	walk(node, func(nodeType string) bool {
		if decisionNodeTypes[nodeType] {
			count++
		}
		return true
	})
	return count
}

// FindCallables returns every method/constructor declaration in the AST,
// the "AST.findCallables()" capability of spec §6.
func (a *AST) FindCallables() []Callable {
	var callables []Callable
	collectCallables(a.tree.RootNode(), a.source, &callables)
	return callables
}

func collectCallables(node *sitter.Node, source []byte, out *[]Callable) {
	if node == nil {
		return
	}
	if callableNodeTypes[node.Type()] {
		if c, ok := buildCallable(node, source); ok {
			*out = append(*out, c)
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectCallables(node.Child(i), source, out)
	}
}

func buildCallable(node *sitter.Node, source []byte) (Callable, bool) {
	body := node.ChildByFieldName("body")
	params := node.ChildByFieldName("parameters")

	paramCount := 0
	if params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			if params.NamedChild(i).Type() == "formal_parameter" || params.NamedChild(i).Type() == "spread_parameter" {
				paramCount++
			}
		}
	}

	return Callable{
		Signature:      canonicalSignature(node, body, source),
		BeginLine:      int(node.StartPoint().Row) + 1,
		EndLine:        int(node.EndPoint().Row) + 1,
		ParameterCount: paramCount,
		DecisionPoints: CountDecisionPoints(body),
	}, true
}

// canonicalSignature renders the declaration text up to its body,
// collapsing all whitespace runs to a single space, so the same logical
// signature serializes identically regardless of source formatting.
func canonicalSignature(node, body *sitter.Node, source []byte) string {
	full := nodeText(node, source)
	if body == nil {
		return normalizeSignature(full)
	}
	bodyStart := body.StartByte()
	nodeStart := node.StartByte()
	if bodyStart <= nodeStart {
		return normalizeSignature(full)
	}
	cut := bodyStart - nodeStart
	if cut > uint32(len(full)) {
		cut = uint32(len(full))
	}
	return normalizeSignature(full[:cut])
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > end || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}

func normalizeSignature(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
