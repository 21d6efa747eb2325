package analyze

// rustProfile maps the tree-sitter-rust grammar. loop_expression counts as a
// while loop since its bound is not tied to an iterable.
var rustProfile = &Profile{
	Language: LangRust,

	FunctionKinds: set("function_item", "closure_expression"),
	RootKind:      "source_file",

	ForKinds:   set("for_expression"),
	WhileKinds: set("while_expression", "loop_expression"),

	CallKinds:          set("call_expression", "macro_invocation"),
	ComprehensionKinds: set(),
	SubscriptKinds:     set("index_expression"),
	IdentifierKinds:    set("identifier", "field_identifier"),
	StringKinds:        set("string_literal", "raw_string_literal"),
	BinaryKinds:        set("binary_expression"),
	AssignmentKinds:    set("assignment_expression", "compound_assignment_expr", "let_declaration"),
	ListLiteralKinds:   set("array_expression"),

	NameField:     "name",
	FunctionField: "function",
	BodyField:     "body",
}
