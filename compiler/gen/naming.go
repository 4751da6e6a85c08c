package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules = ruleset()
	title = cases.Title(language.English, cases.NoLower)
)

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, w := range []string{"ID", "UUID", "SQL", "API", "URL"} {
		r.AddAcronym(w)
	}
	return r
}

// snake converts a name to snake_case.
func snake(s string) string {
	return rules.Underscore(s)
}

// pascal converts a name to PascalCase.
func pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, "")
}

// tableName resolves the table of an entity: the explicit annotation
// value if present, else the lower-cased simple type name.
func tableName(explicit, typeName string) string {
	if explicit != "" {
		return explicit
	}
	return strings.ToLower(typeName)
}

// columnName resolves the column of a member: the explicit annotation
// value if present, else the snake-cased member name.
func columnName(explicit, memberName string) string {
	if explicit != "" {
		return explicit
	}
	return snake(memberName)
}

// backrefName derives the name of a synthesized edge from the simple
// name of the entity it points back at.
func backrefName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		qualified = qualified[i+1:]
	}
	return snake(qualified)
}
