package mediator

import (
	"reflect"
	"strings"
	"unicode"
)

// NamingStrategy derives request type keys from Go types.
type NamingStrategy interface {
	TypeName(t reflect.Type) string
}

// KebabNaming converts PascalCase to dot-separated lowercase.
// Example: AddProduct → "add.product"
var KebabNaming NamingStrategy = caseNaming{sep: "."}

// SnakeNaming converts PascalCase to underscore-separated lowercase.
// Example: AddProduct → "add_product"
var SnakeNaming NamingStrategy = caseNaming{sep: "_"}

type caseNaming struct{ sep string }

func (n caseNaming) TypeName(t reflect.Type) string {
	name := t.Name()
	var b strings.Builder
	b.Grow(len(name) + 2)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteString(n.sep)
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
