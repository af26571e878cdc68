package syntax

// Kind classifies the grammar node types the analyzer and slicer dispatch on.
// Grammar types without a dedicated kind map to KindOther.
type Kind uint8

const (
	KindOther Kind = iota
	KindProgram
	KindImport
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindNamespaceImport
	KindExport
	KindExportClause
	KindExportSpecifier
	KindLexicalDeclaration
	KindVariableDeclaration
	KindDeclarator
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunction
	KindMethod
	KindClassDeclaration
	KindClassExpression
	KindFormalParameters
	KindStatementBlock
	KindForStatement
	KindForInStatement
	KindCatchClause
	KindSwitchBody
	KindExpressionStatement
	KindCall
	KindArguments
	KindMember
	KindObject
	KindPair
	KindIdentifier
	KindShorthandProperty
	KindShorthandPattern
	KindPropertyIdentifier
	KindObjectPattern
	KindArrayPattern
	KindPairPattern
	KindAssignmentPattern
	KindObjectAssignmentPattern
	KindRestPattern
	KindString
	KindTrue
	KindFalse
	KindNull
	KindParenthesized
	KindJSXElement
	KindJSXSelfClosing
	KindJSXOpening
	KindJSXClosing
	KindJSXAttribute
	KindJSXExpression
	KindJSXText
	KindNestedIdentifier
	KindComment
)

var kindNames = [...]string{
	KindOther:                   "other",
	KindProgram:                 "program",
	KindImport:                  "import",
	KindImportClause:            "import_clause",
	KindNamedImports:            "named_imports",
	KindImportSpecifier:         "import_specifier",
	KindNamespaceImport:         "namespace_import",
	KindExport:                  "export",
	KindExportClause:            "export_clause",
	KindExportSpecifier:         "export_specifier",
	KindLexicalDeclaration:      "lexical_declaration",
	KindVariableDeclaration:     "variable_declaration",
	KindDeclarator:              "declarator",
	KindFunctionDeclaration:     "function_declaration",
	KindFunctionExpression:      "function_expression",
	KindArrowFunction:           "arrow_function",
	KindMethod:                  "method",
	KindClassDeclaration:        "class_declaration",
	KindClassExpression:         "class_expression",
	KindFormalParameters:        "formal_parameters",
	KindStatementBlock:          "statement_block",
	KindForStatement:            "for_statement",
	KindForInStatement:          "for_in_statement",
	KindCatchClause:             "catch_clause",
	KindSwitchBody:              "switch_body",
	KindExpressionStatement:     "expression_statement",
	KindCall:                    "call",
	KindArguments:               "arguments",
	KindMember:                  "member",
	KindObject:                  "object",
	KindPair:                    "pair",
	KindIdentifier:              "identifier",
	KindShorthandProperty:       "shorthand_property",
	KindShorthandPattern:        "shorthand_pattern",
	KindPropertyIdentifier:      "property_identifier",
	KindObjectPattern:           "object_pattern",
	KindArrayPattern:            "array_pattern",
	KindPairPattern:             "pair_pattern",
	KindAssignmentPattern:       "assignment_pattern",
	KindObjectAssignmentPattern: "object_assignment_pattern",
	KindRestPattern:             "rest_pattern",
	KindString:                  "string",
	KindTrue:                    "true",
	KindFalse:                   "false",
	KindNull:                    "null",
	KindParenthesized:           "parenthesized",
	KindJSXElement:              "jsx_element",
	KindJSXSelfClosing:          "jsx_self_closing",
	KindJSXOpening:              "jsx_opening",
	KindJSXClosing:              "jsx_closing",
	KindJSXAttribute:            "jsx_attribute",
	KindJSXExpression:           "jsx_expression",
	KindJSXText:                 "jsx_text",
	KindNestedIdentifier:        "nested_identifier",
	KindComment:                 "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// grammarKinds maps tree-sitter-javascript node types to kinds. Some types were
// renamed across grammar versions (function vs function_expression), both are listed.
var grammarKinds = map[string]Kind{
	"program":                               KindProgram,
	"import_statement":                      KindImport,
	"import_clause":                         KindImportClause,
	"named_imports":                         KindNamedImports,
	"import_specifier":                      KindImportSpecifier,
	"namespace_import":                      KindNamespaceImport,
	"export_statement":                      KindExport,
	"export_clause":                         KindExportClause,
	"export_specifier":                      KindExportSpecifier,
	"lexical_declaration":                   KindLexicalDeclaration,
	"variable_declaration":                  KindVariableDeclaration,
	"variable_declarator":                   KindDeclarator,
	"function_declaration":                  KindFunctionDeclaration,
	"generator_function_declaration":        KindFunctionDeclaration,
	"function":                              KindFunctionExpression,
	"function_expression":                   KindFunctionExpression,
	"generator_function":                    KindFunctionExpression,
	"arrow_function":                        KindArrowFunction,
	"method_definition":                     KindMethod,
	"class_declaration":                     KindClassDeclaration,
	"class":                                 KindClassExpression,
	"formal_parameters":                     KindFormalParameters,
	"statement_block":                       KindStatementBlock,
	"class_static_block":                    KindStatementBlock,
	"for_statement":                         KindForStatement,
	"for_in_statement":                      KindForInStatement,
	"catch_clause":                          KindCatchClause,
	"switch_body":                           KindSwitchBody,
	"expression_statement":                  KindExpressionStatement,
	"call_expression":                       KindCall,
	"arguments":                             KindArguments,
	"member_expression":                     KindMember,
	"object":                                KindObject,
	"pair":                                  KindPair,
	"identifier":                            KindIdentifier,
	"shorthand_property_identifier":         KindShorthandProperty,
	"shorthand_property_identifier_pattern": KindShorthandPattern,
	"property_identifier":                   KindPropertyIdentifier,
	"object_pattern":                        KindObjectPattern,
	"array_pattern":                         KindArrayPattern,
	"pair_pattern":                          KindPairPattern,
	"assignment_pattern":                    KindAssignmentPattern,
	"object_assignment_pattern":             KindObjectAssignmentPattern,
	"rest_pattern":                          KindRestPattern,
	"string":                                KindString,
	"true":                                  KindTrue,
	"false":                                 KindFalse,
	"null":                                  KindNull,
	"parenthesized_expression":              KindParenthesized,
	"jsx_element":                           KindJSXElement,
	"jsx_self_closing_element":              KindJSXSelfClosing,
	"jsx_opening_element":                   KindJSXOpening,
	"jsx_closing_element":                   KindJSXClosing,
	"jsx_attribute":                         KindJSXAttribute,
	"jsx_expression":                        KindJSXExpression,
	"jsx_text":                              KindJSXText,
	"nested_identifier":                     KindNestedIdentifier,
	"comment":                               KindComment,
}

// KindOf returns the kind for a grammar node type.
func KindOf(grammarType string) Kind {
	if kind, ok := grammarKinds[grammarType]; ok {
		return kind
	}
	return KindOther
}

// IsScope reports whether nodes of this kind open a lexical scope.
func (k Kind) IsScope() bool {
	switch k {
	case KindProgram, KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction, KindMethod,
		KindClassExpression, KindStatementBlock, KindForStatement, KindForInStatement, KindCatchClause, KindSwitchBody:
		return true
	}
	return false
}

// IsFunction reports whether nodes of this kind own a function scope.
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction, KindMethod:
		return true
	}
	return false
}

// IsElement reports whether the node is a JSX element (paired or self-closing).
func (k Kind) IsElement() bool {
	return k == KindJSXElement || k == KindJSXSelfClosing
}
