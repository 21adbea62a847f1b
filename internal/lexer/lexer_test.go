package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	res := make([]Kind, len(tokens))
	for i, tok := range tokens {
		res[i] = tok.Kind
	}
	return res
}

func TestTokenize_kinds(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []Kind
	}{
		{"empty", "", []Kind{End}},
		{"arith", "1 + 2 * 3", []Kind{Number, Add, Number, Multiply, Number, End}},
		{"floor div", "7 // 2", []Kind{Number, FloorDiv, Number, End}},
		{"divide", "7 / 2", []Kind{Number, Divide, Number, End}},
		{"modulo", "7 % 2", []Kind{Number, Modulo, Number, End}},
		{"relational", "a <= b >= c < d > e", []Kind{
			Identifier, LessEqual, Identifier, GreaterEqual, Identifier,
			Less, Identifier, Greater, Identifier, End}},
		{"equality", "a == b != c", []Kind{Identifier, EqualEqual, Identifier, NotEqual, Identifier, End}},
		{"logic", "a && b || c", []Kind{Identifier, And, Identifier, Or, Identifier, End}},
		{"postfix", "i++; j--;", []Kind{Identifier, Increment, Semicolon, Identifier, Decrement, Semicolon, End}},
		{"range", "1..5", []Kind{Number, DotDot, Number, End}},
		{"member", "a.b", []Kind{Identifier, Dot, Identifier, End}},
		{"pipeline arrow coloncolon", "|> -> ::", []Kind{Pipeline, Arrow, DoubleColon, End}},
		{"assignment", "x = 1;", []Kind{Identifier, Assign, Number, Semicolon, End}},
		{"array", "[1, 2]", []Kind{LBracket, Number, Comma, Number, RBracket, End}},
		{"keywords", "sub group while through module dismiss if else const return break continue",
			[]Kind{Function, Group, While, Through, Module, Dismiss, If, Else, Const, Return, Break, Continue, End}},
		{"literal keywords", "true false null", []Kind{True, False, Null, End}},
		{"builtins", "log sizeof type string number sequence",
			[]Kind{BuiltIn, BuiltIn, BuiltIn, BuiltIn, BuiltIn, BuiltIn, End}},
		{"loop modes", "loop collect unique every filter",
			[]Kind{LoopMode, LoopMode, LoopMode, LoopMode, LoopMode, End}},
		{"comment", "1 # the rest is ignored\n2", []Kind{Number, Number, End}},
		{"bang", "!x", []Kind{Bang, Identifier, End}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, kinds(Tokenize(tc.src)))
		})
	}
}

func TestTokenize_numbers(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want []Token
	}{
		{"42", []Token{{Kind: Number, Line: 1, Num: 42}, {Kind: End, Line: 1}}},
		{"3.14", []Token{{Kind: Number, Line: 1, Num: 3.14}, {Kind: End, Line: 1}}},

		// a dot run after digits is a range, not a fraction
		{"1..3", []Token{
			{Kind: Number, Line: 1, Num: 1},
			{Kind: DotDot, Line: 1},
			{Kind: Number, Line: 1, Num: 3},
			{Kind: End, Line: 1}}},
		{"1.5..3", []Token{
			{Kind: Number, Line: 1, Num: 1.5},
			{Kind: DotDot, Line: 1},
			{Kind: Number, Line: 1, Num: 3},
			{Kind: End, Line: 1}}},
	} {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.src))
		})
	}
}

func TestTokenize_strings(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{"plain", `"hello"`, "hello"},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"tab escape", `"a\tb"`, "a\tb"},
		{"quote escape", `"say \"hi\""`, `say "hi"`},
		{"unknown escape passes through", `"a\xb"`, `a\xb`},
		{"empty", `""`, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tokens := Tokenize(tc.src)
			require.Len(t, tokens, 2)
			assert.Equal(t, String, tokens[0].Kind)
			assert.Equal(t, tc.want, tokens[0].Text)
		})
	}
}

func TestTokenize_lines(t *testing.T) {
	tokens := Tokenize("a = 1;\nb = 2;\n\nc = \"x\ny\";")
	byLine := map[int][]Kind{}
	for _, tok := range tokens {
		byLine[tok.Line] = append(byLine[tok.Line], tok.Kind)
	}

	assert.Equal(t, []Kind{Identifier, Assign, Number, Semicolon}, byLine[1])
	assert.Equal(t, []Kind{Identifier, Assign, Number, Semicolon}, byLine[2])
	// the string literal opens on line 4; the embedded newline bumps
	// the tokens after it to line 5
	assert.Equal(t, []Kind{Identifier, Assign, String}, byLine[4])
	assert.Equal(t, []Kind{Semicolon, End}, byLine[5])
}

func TestTokenize_junkBytesDoNotAbort(t *testing.T) {
	var reported []string
	lx := New("a @ b")
	lx.Errf = func(mess string, args ...interface{}) {
		reported = append(reported, mess)
	}

	tokens := lx.Tokenize()
	assert.Equal(t, []Kind{Identifier, Identifier, End}, kinds(tokens))
	assert.Len(t, reported, 1, "expected one junk byte report")
}

func TestTokenize_trueFalseValues(t *testing.T) {
	tokens := Tokenize("true false")
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Num)
	assert.Equal(t, 0.0, tokens[1].Num)
}
