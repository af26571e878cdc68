package binding

// Kind is the declaration form that introduced a binding.
type Kind string

const (
	Import   Kind = "import"
	Var      Kind = "var"
	Let      Kind = "let"
	Const    Kind = "const"
	Function Kind = "function"
	Class    Kind = "class"
	Param    Kind = "param"
	Catch    Kind = "catch"
)

// ScopeKind is the syntactic region a scope was opened for.
type ScopeKind string

const (
	ProgramScope  ScopeKind = "program"
	FunctionScope ScopeKind = "function"
	BlockScope    ScopeKind = "block"
	CatchScope    ScopeKind = "catch"
	ClassScope    ScopeKind = "class"
)
