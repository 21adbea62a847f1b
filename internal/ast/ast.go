// Package ast defines the typed tree produced by the parser.
//
// Nodes carry their source line for runtime error reports; the evaluator
// drives them by type switch, so there is no behaviour here beyond the
// static type hints the parser uses for annotation checks.
package ast

import "github.com/jcorbin/vyne/internal/lexer"

// Type is the statically known value type of an expression node, used by
// the parser to check explicit ::Type annotations at compile time.
type Type int

// Static types; Unknown means "decided at runtime".
const (
	Unknown Type = iota
	Number
	String
	Array
	Function
	Module
)

func (t Type) String() string {
	switch t {
	case Number:
		return "Number"
	case String:
		return "String"
	case Array:
		return "Array"
	case Function:
		return "Function"
	case Module:
		return "Module"
	}
	return "Unknown"
}

// Node is any tree node. Concrete nodes own their children.
type Node interface {
	Pos() int
	StaticType() Type
}

// Base carries the parts every node shares; concrete nodes embed it.
type Base struct {
	Line int
}

// Pos returns the 1-based source line the node started on.
func (b Base) Pos() int { return b.Line }

// StaticType defaults to Unknown.
func (b Base) StaticType() Type { return Unknown }

// ForMode selects what a through loop yields.
type ForMode int

// Through loop modes. Every currently folds like Loop; Unique is lexed
// but rejected at evaluation.
const (
	Loop ForMode = iota
	Collect
	Filter
	Every
	Unique
)

// ForModeOf maps a loop-mode lexeme to its mode; unknown lexemes loop.
func ForModeOf(word string) ForMode {
	switch word {
	case "collect":
		return Collect
	case "filter":
		return Filter
	case "every":
		return Every
	case "unique":
		return Unique
	}
	return Loop
}

func (m ForMode) String() string {
	switch m {
	case Collect:
		return "collect"
	case Filter:
		return "filter"
	case Every:
		return "every"
	case Unique:
		return "unique"
	}
	return "loop"
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Base
	Stmts []Node
}

// Block is a braced statement sequence evaluating to its last statement.
type Block struct {
	Base
	Stmts []Node
}

// Group executes its body with the current group extended by Name.
type Group struct {
	Base
	Name  string
	Stmts []Node
}

// Num is a number literal.
type Num struct {
	Base
	Val float64
}

// StaticType of a number literal is Number.
func (Num) StaticType() Type { return Number }

// Str is a string literal.
type Str struct {
	Base
	Text string
}

// StaticType of a string literal is String.
func (Str) StaticType() Type { return String }

// Bool is a true/false literal; it evaluates to 1 or 0.
type Bool struct {
	Base
	Val bool
}

// StaticType of a boolean literal is Number.
func (Bool) StaticType() Type { return Number }

// NullLit is the null literal.
type NullLit struct {
	Base
}

// ArrayLit evaluates its elements left to right into a fresh array.
type ArrayLit struct {
	Base
	Elems []Node
}

// StaticType of an array literal is Array.
func (ArrayLit) StaticType() Type { return Array }

// Range is an inclusive integer-stepped sequence lo..hi.
type Range struct {
	Base
	Lo, Hi Node
}

// StaticType of a range is Array.
func (Range) StaticType() Type { return Array }

// Var is a variable reference, optionally scoped as a.b.c.name.
type Var struct {
	Base
	ID    uint32
	Name  string
	Scope []string
}

// Index reads one element of a named array.
type Index struct {
	Base
	ID    uint32
	Name  string
	Scope []string
	Expr  Node
}

// Assign binds RHS to a name, optionally through an index expression and
// an explicit scope path. Const marks the stored value read-only.
type Assign struct {
	Base
	ID    uint32
	Name  string
	RHS   Node
	Index Node // nil unless name[expr] = ...
	Scope []string
	Const bool
}

// BinOp applies a binary operator; Op is the operator's token kind.
type BinOp struct {
	Base
	Op   lexer.Kind
	L, R Node
}

// StaticType of every defined binary operator result is Number, except
// that + is polymorphic over strings and arrays.
func (b BinOp) StaticType() Type {
	switch b.Op {
	case lexer.Add:
		return Unknown
	case lexer.Subtract, lexer.Multiply, lexer.Divide, lexer.FloorDiv,
		lexer.Modulo, lexer.And, lexer.Or, lexer.EqualEqual, lexer.NotEqual,
		lexer.Greater, lexer.Less, lexer.GreaterEqual, lexer.LessEqual:
		return Number
	}
	return Unknown
}

// Postfix applies ++ or -- to a variable reference.
type Postfix struct {
	Base
	Op      lexer.Kind
	Operand Node
}

// StaticType of a postfix step is Number.
func (Postfix) StaticType() Type { return Number }

// BuiltinCall invokes one of the language built-ins by name.
type BuiltinCall struct {
	Base
	Name string
	Args []Node
}

// FuncDef defines a subroutine. Target names the module a `sub m::f`
// definition injects into; empty means the current group.
type FuncDef struct {
	Base
	Target string
	ID     uint32
	Name   string
	Params []uint32
	Body   []Node
}

// StaticType of a definition expression is Function.
func (FuncDef) StaticType() Type { return Function }

// Call invokes a function bound in the global group.
type Call struct {
	Base
	ID   uint32
	Name string
	Args []Node
}

// MethodCall dispatches Name on the receiver (module or array).
type MethodCall struct {
	Base
	Recv Node
	Name string
	Args []Node
}

// ReturnStmt unwinds the current function call with its value.
type ReturnStmt struct {
	Base
	Expr Node
}

// WhileStmt loops its body while the condition is truthy.
type WhileStmt struct {
	Base
	Cond, Body Node
}

// ForStmt is a through loop over an iterable.
type ForStmt struct {
	Base
	Iter Node
	Body Node
	Name string // iterator name, "_" by default
	Mode ForMode
}

// IfStmt branches on the condition's truthiness.
type IfStmt struct {
	Base
	Cond, Then Node
	Else       Node // may be nil
}

// ModuleStmt registers and binds a module by name.
type ModuleStmt struct {
	Base
	ID   uint32
	Name string
}

// StaticType of a module statement is Module.
func (ModuleStmt) StaticType() Type { return Module }

// DismissStmt removes a module's group and binding.
type DismissStmt struct {
	Base
	ID   uint32
	Name string
}

// BreakStmt stops the enclosing loop.
type BreakStmt struct {
	Base
}

// ContinueStmt skips to the next iteration of the enclosing loop.
type ContinueStmt struct {
	Base
}
