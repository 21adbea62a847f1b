package lexer

import "fmt"

// Kind discriminates tokens.
type Kind int

// Token kinds, in rough grammar order.
const (
	// literals and identifiers
	Identifier Kind = iota
	Number
	String
	True
	False
	Null

	// structure keywords
	Group
	Function // 'sub'
	Module
	Dismiss
	Const

	// control flow keywords
	If
	Else
	While
	Through
	LoopMode // 'loop', 'collect', 'unique', 'every', 'filter'
	Return
	Break
	Continue

	// arithmetic operators
	Add
	Subtract
	Multiply
	Divide
	FloorDiv
	Modulo
	Increment
	Decrement
	Bang

	// logic and relational operators
	And
	Or
	Assign
	EqualEqual
	NotEqual
	Greater
	Less
	GreaterEqual
	LessEqual
	Pipeline

	// delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
	DotDot
	Arrow       // ->
	DoubleColon // ::

	// special
	BuiltIn
	End
)

var kindNames = map[Kind]string{
	Identifier:  "Identifier",
	Number:      "Number",
	String:      "String",
	True:        "'true'",
	False:       "'false'",
	Null:        "'null'",
	Group:       "'group'",
	Function:    "'sub'",
	Module:      "'module'",
	Dismiss:     "'dismiss'",
	Const:       "'const'",
	If:          "'if'",
	Else:        "'else'",
	While:       "'while'",
	Through:     "'through'",
	LoopMode:    "loop mode keyword",
	Return:      "'return'",
	Break:       "'break'",
	Continue:    "'continue'",
	Add:         "'+'",
	Subtract:    "'-'",
	Multiply:    "'*'",
	Divide:      "'/'",
	FloorDiv:    "'//'",
	Modulo:      "'%'",
	Increment:   "'++'",
	Decrement:   "'--'",
	Bang:        "'!'",
	And:         "'&&'",
	Or:          "'||'",
	Assign:      "'='",
	EqualEqual:  "'=='",
	NotEqual:    "'!='",
	Greater:     "'>'",
	Less:        "'<'",
	GreaterEqual: "'>='",
	LessEqual:    "'<='",
	Pipeline:    "'|>'",
	LParen:      "'('",
	RParen:      "')'",
	LBrace:      "'{'",
	RBrace:      "'}'",
	LBracket:    "'['",
	RBracket:    "']'",
	Comma:       "','",
	Semicolon:   "';'",
	Dot:         "'.'",
	DotDot:      "'..'",
	Arrow:       "'->'",
	DoubleColon: "'::'",
	BuiltIn:     "built-in function",
	End:         "end of file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexed unit. Num carries the parsed value for Number (and
// 1/0 for True/False); Text carries the lexeme for identifiers, strings,
// built-ins and loop modes.
type Token struct {
	Kind Kind
	Line int
	Num  float64
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("%v(%v)", t.Kind, t.Num)
	case Identifier, String, BuiltIn, LoopMode:
		return fmt.Sprintf("%v(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}
