// This file implements name conversion from JSON property names to valid Go
// identifiers, including reserved word escaping and PascalCase conversion.

package codegen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goReservedWords contains Go reserved keywords that cannot be used as identifiers.
// Note: We only include actual keywords, not predeclared identifiers like "error",
// because those can be shadowed and show up naturally as field names.
var goReservedWords = map[string]bool{
	// Keywords (these are truly reserved and cannot be used)
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// escapeReservedWord checks if a name is a Go reserved keyword and escapes it
// by appending an underscore if necessary. The check is case-insensitive because
// PascalCase names like "Range" or "Type" should still be escaped.
func escapeReservedWord(name string) string {
	if goReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// toTypeName converts a JSON name to a valid Go type name (PascalCase).
// It handles special characters, ensures the name starts with a letter,
// and escapes Go reserved words.
func toTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	// Use golang.org/x/text/cases for proper Unicode title casing
	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if capitalizeNext {
				result.WriteString(titleCaser.String(string(r)))
				capitalizeNext = false
			} else {
				result.WriteRune(r)
			}
		} else {
			capitalizeNext = true
		}
	}

	name := result.String()
	if name == "" {
		// Nothing usable survived, e.g. a name of only punctuation.
		return "Type"
	}

	// Ensure starts with a letter
	if !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}

	return escapeReservedWord(name)
}

// toFieldName converts a JSON property name to a valid Go field name (PascalCase).
func toFieldName(s string) string {
	return toTypeName(s)
}
