package codegen

// Config is the emitter's configuration surface (spec.md §6 "Configuration").
type Config struct {
	// LibName names the generated defines/enums/helpers objects
	// (<LibName>Defines, <LibName>Enums, <LibName>Helpers).
	LibName string
	// LinkName is the native library name passed to @link; when empty the
	// @link annotation is omitted.
	LinkName string
	// ObjectName is the name of the main @extern object.
	ObjectName string
	// PackageName is the emitted file's package declaration.
	PackageName string
	// ExcludePrefix is threaded through to ir.Container.Generate before
	// emission (SPEC_FULL.md §4.8, spec.md §4.3).
	ExcludePrefix string
}
