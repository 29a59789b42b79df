// Package common holds small naming helpers shared by internal/ir and
// internal/codegen: the reserved-word set a function name is checked
// against (spec.md §4.2) and the quoting rule applied to a handful of
// identifiers the target dialect's own keywords would otherwise collide
// with (e.g. "type", "object", "val").
package common

// ReservedWords is the target dialect's keyword set relevant to C
// identifiers that show up as function, parameter, or field names.
// "native" is the canonical offender spec.md §4.2 and §8 scenario S3
// exercise (it collides with the generated module's own `native` import
// alias); the rest round out the dialect's actual reserved-word list so
// any C identifier colliding with it is still handled, not just the one
// literal example.
var ReservedWords = map[string]bool{
	"native": true,
	"type":   true,
	"object": true,
	"val":    true,
	"var":    true,
	"def":    true,
	"class":  true,
	"trait":  true,
	"import": true,
	"package": true,
}

// IsReserved reports whether name collides with the target dialect's
// keyword set.
func IsReserved(name string) bool {
	return ReservedWords[name]
}

// Quote wraps name in the dialect's identifier-escaping backticks, used
// for field/parameter names that collide with a reserved word but, unlike
// functions, have no separate renamed-output-name slot to fall back to
// (spec.md §4.7's per-entity schemas render parameter/field names
// directly).
func Quote(name string) string {
	return "`" + name + "`"
}

// QuoteIfReserved applies Quote only when name collides with the target
// dialect's keyword set, leaving every other identifier untouched.
func QuoteIfReserved(name string) string {
	if IsReserved(name) {
		return Quote(name)
	}
	return name
}
