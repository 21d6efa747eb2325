package analyze

// pythonProfile maps the tree-sitter-python grammar. Python is the primary
// target: comprehensions and the range/len idioms only exist here.
var pythonProfile = &Profile{
	Language: LangPython,

	FunctionKinds: set("function_definition"),
	RootKind:      "module",

	ForKinds:   set("for_statement"),
	WhileKinds: set("while_statement"),

	CallKinds: set("call"),
	ComprehensionKinds: set(
		"list_comprehension",
		"set_comprehension",
		"dictionary_comprehension",
		"generator_expression",
	),
	SubscriptKinds:  set("subscript"),
	IdentifierKinds: set("identifier"),
	StringKinds:     set("string", "string_content"),
	BinaryKinds:     set("binary_operator", "boolean_operator", "comparison_operator"),
	AssignmentKinds: set("assignment", "augmented_assignment"),
	ListLiteralKinds: set(
		"list", "tuple", "set", "dictionary",
	),

	NameField:     "name",
	FunctionField: "function",
	BodyField:     "body",
}
