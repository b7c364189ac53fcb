package completion

import (
	"fmt"
	"strings"

	"typesift/pkg/core"
)

// methodSnippet renders the insertion snippet for a method: one
// numbered placeholder per non-block argument (keyword arguments keep
// their `name: ` label, declared types become placeholder hints),
// closed by the zero placeholder that parks the cursor after the call.
func methodSnippet(sym *core.Symbol) string {
	var placeholders []string

	i := 1
	if sym.IsMethod() {
		for _, arg := range sym.Args {
			if arg.Block {
				continue
			}
			var b strings.Builder
			if arg.Keyword {
				b.WriteString(arg.Name)
				b.WriteString(": ")
			}
			if arg.Type != nil {
				fmt.Fprintf(&b, "${%d:%s}", i, arg.Type.String())
			} else {
				fmt.Fprintf(&b, "${%d}", i)
			}
			i++
			placeholders = append(placeholders, b.String())
		}
	}

	return fmt.Sprintf("%s(%s)${0}", sym.Name, strings.Join(placeholders, ", "))
}
