package analyze

// typescriptProfile maps the tree-sitter-typescript grammar.
var typescriptProfile = &Profile{
	Language: LangTypeScript,

	FunctionKinds: set(
		"function_declaration",
		"method_definition",
		"arrow_function",
		"function_expression",
		"generator_function_declaration",
	),
	RootKind: "program",

	ForKinds:   set("for_statement", "for_in_statement"),
	WhileKinds: set("while_statement", "do_statement"),

	CallKinds:          set("call_expression"),
	ComprehensionKinds: set(),
	SubscriptKinds:     set("subscript_expression"),
	IdentifierKinds:    set("identifier", "property_identifier"),
	StringKinds:        set("string", "template_string", "string_fragment"),
	BinaryKinds:        set("binary_expression"),
	AssignmentKinds:    set("assignment_expression", "augmented_assignment_expression", "variable_declarator"),
	ListLiteralKinds:   set("array", "object"),

	NameField:     "name",
	FunctionField: "function",
	BodyField:     "body",
}
