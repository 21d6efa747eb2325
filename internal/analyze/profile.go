package analyze

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Profile maps a language's tree-sitter node kinds onto the abstract syntax
// categories the detectors reason about. The engine never switches on raw
// kind strings outside of a profile; adding a language means adding a profile.
type Profile struct {
	Language Language

	// Definition kinds.
	FunctionKinds map[string]bool // function and method definitions
	RootKind      string          // "module", "source_file", "program"

	// Control flow kinds.
	ForKinds   map[string]bool
	WhileKinds map[string]bool

	// Expression kinds.
	CallKinds          map[string]bool
	ComprehensionKinds map[string]bool
	SubscriptKinds     map[string]bool
	IdentifierKinds    map[string]bool
	StringKinds        map[string]bool
	BinaryKinds        map[string]bool
	AssignmentKinds    map[string]bool
	ListLiteralKinds   map[string]bool

	// Field names used to reach a definition's name and a call's callee.
	NameField     string
	FunctionField string
	BodyField     string
}

// functionName returns the declared name of a function definition node, or ""
// when the node carries no name (anonymous functions, arrow functions).
func (p *Profile) functionName(node *tree_sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName(p.NameField)
	if nameNode == nil {
		return ""
	}
	return nameNode.Utf8Text(source)
}

// calleeNode returns the callee expression of a call node, or nil.
func (p *Profile) calleeNode(node *tree_sitter.Node) *tree_sitter.Node {
	return node.ChildByFieldName(p.FunctionField)
}

// bodyNode returns the body of a function definition node. When the grammar
// exposes no body field the definition node itself is returned so traversal
// still covers the function.
func (p *Profile) bodyNode(node *tree_sitter.Node) *tree_sitter.Node {
	if p.BodyField == "" {
		return node
	}
	body := node.ChildByFieldName(p.BodyField)
	if body == nil {
		return node
	}
	return body
}

// isLoop reports whether the node kind is any loop construct.
func (p *Profile) isLoop(kind string) bool {
	return p.ForKinds[kind] || p.WhileKinds[kind]
}

// profiles is the fixed per-language registry, mirroring the grammar set the
// parser registers.
var profiles = map[Language]*Profile{
	LangPython:     pythonProfile,
	LangGo:         goProfile,
	LangTypeScript: typescriptProfile,
	LangRust:       rustProfile,
}

// ProfileFor returns the syntax profile for lang, or nil when unsupported.
func ProfileFor(lang Language) *Profile {
	return profiles[lang]
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
