package value

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String renders the concatenation form: numbers as their shortest
// decimal with no trailing zeros or dot, strings as their raw text.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNum(v.num)
	case KindString:
		return *v.str
	case KindNull:
		return "null"
	}
	var sb strings.Builder
	v.Print(&sb)
	return sb.String()
}

// Print renders the literal form log() and the REPL echo use: like
// String, except strings appear quoted.
func (v Value) Print(w io.Writer) {
	switch v.kind {
	case KindNull:
		io.WriteString(w, "null")
	case KindNumber:
		io.WriteString(w, formatNum(v.num))
	case KindString:
		fmt.Fprintf(w, "%q", *v.str)
	case KindArray:
		io.WriteString(w, "[")
		for i, el := range *v.arr {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			el.Print(w)
		}
		io.WriteString(w, "]")
	case KindFunction:
		io.WriteString(w, "<function>")
	case KindModule:
		fmt.Fprintf(w, "<module '%v'>", v.mod.Name)
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
