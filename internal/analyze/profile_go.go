package analyze

// goProfile maps the tree-sitter-go grammar. Go has a single loop keyword and
// no comprehensions, so the comprehension set stays empty.
var goProfile = &Profile{
	Language: LangGo,

	FunctionKinds: set("function_declaration", "method_declaration", "func_literal"),
	RootKind:      "source_file",

	ForKinds:   set("for_statement"),
	WhileKinds: set(),

	CallKinds:          set("call_expression"),
	ComprehensionKinds: set(),
	SubscriptKinds:     set("index_expression"),
	IdentifierKinds:    set("identifier", "field_identifier"),
	StringKinds:        set("interpreted_string_literal", "raw_string_literal"),
	BinaryKinds:        set("binary_expression"),
	AssignmentKinds:    set("assignment_statement", "short_var_declaration"),
	ListLiteralKinds:   set("composite_literal"),

	NameField:     "name",
	FunctionField: "function",
	BodyField:     "body",
}
