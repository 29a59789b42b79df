// Package codegen implements spec.md §4.6's emitter: a pure function of a
// finalized ir.Container plus Config, producing the target module's text
// (SPEC_FULL.md §4.6, design note §9 "Emitter as a fold over IR"). Each
// per-entity schema (spec.md §4.7) is rendered through the text/template
// fragments in templates.go, mirroring the teacher's golang/generator.go
// composition of golang/templates/*.tmpl.go.
package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/kornilova-l/scala-native-bindgen/internal/common"
	"github.com/kornilova-l/scala-native-bindgen/internal/diag"
	"github.com/kornilova-l/scala-native-bindgen/internal/ir"
)

var tmpls = newTemplateSet()

func newTemplateSet() *template.Template {
	t := template.New("BindgenTemplates")
	for _, src := range []string{
		typeDefTemplate,
		enumMemberTemplate, enumsObjectTemplate,
		variableTemplate, varDefineTemplate, functionTemplate,
		literalDefineTemplate, definesObjectTemplate,
		helperClassTemplate, helpersObjectTemplate,
		packageLineTemplate, fixedImportsTemplate,
		libObjectOpenTemplate, libObjectFooterTemplate, reimportObjectTemplate,
	} {
		template.Must(t.Parse(src))
	}
	return t
}

func execute(name string, data interface{}) string {
	buf := new(bytes.Buffer)
	if err := tmpls.ExecuteTemplate(buf, name, data); err != nil {
		// Every template is parsed with template.Must at package init;
		// a failure here means a view model field name drifted from a
		// template's field reference, a programming error rather than
		// something a caller can recover from.
		panic(fmt.Sprintf("codegen: executing template %q: %v", name, err))
	}
	return buf.String()
}

// Emit implements spec.md §4.6 steps 1-7 in order, returning the generated
// module text plus every diagnostic recorded along the way (packed-struct
// warnings, SPEC_FULL.md §4.8). Every block is omitted entirely when it has
// no content, mirroring original_source/bindgen/ir/IR.cpp's operator<<
// (`if (!packageName.empty())`, `if (!isLibObjectEmpty)`, ...) rather than
// always printing an empty package line or an empty @extern object.
func Emit(cfg Config, c *ir.Container) (string, []diag.Diagnostic) {
	sink := &diag.RecordingSink{}
	c.Generate(cfg.ExcludePrefix)

	libEmpty := libObjEmpty(c)
	hasEnum := hasOutputtedEnum(c)
	hasHelpers := hasHelperMethods(c)

	var out strings.Builder

	// Step 1: package line, only when a package name is set.
	if cfg.PackageName != "" {
		out.WriteString(execute("PackageLine", map[string]string{"PackageName": cfg.PackageName}))
	}

	// Step 2a: fixed imports, only when the lib object, the enums object,
	// or the literal-defines object will actually have content to import
	// unsafe-type support for.
	if !libEmpty || hasEnum || len(c.LiteralDefines) > 0 {
		out.WriteString(execute("FixedImports", nil))
	}

	// Step 2b: the @extern object itself is opened only when it will hold
	// at least one declaration.
	if !libEmpty {
		out.WriteString(execute("LibObjectOpen", map[string]string{
			"LinkName":   cfg.LinkName,
			"ObjectName": cfg.ObjectName,
		}))
	}

	// Step 3: typedefs, variables, var-defines, functions, in that order
	// (spec.md §4.6 step 3).
	for _, td := range c.TypeDefs {
		if !c.ShouldOutput(td) {
			if td.Type == nil {
				sink.Warnf("unused alias for incomplete type: %s", td.Name)
			}
			continue
		}
		out.WriteString("\n  ")
		out.WriteString(execute("TypeDef", map[string]string{
			"Name":      td.Name,
			"Rendering": td.Rendering(),
		}))
	}
	for _, v := range c.Variables {
		if !c.ShouldOutput(v) {
			continue
		}
		if c.HasIllegalOpaqueUsage(v) {
			sink.Errorf("variable %q has opaque (incomplete) type and cannot be declared", v.Name)
			continue
		}
		out.WriteString("\n  ")
		out.WriteString(execute("Variable", map[string]string{
			"Name":           v.Name,
			"IdentifierName": common.QuoteIfReserved(v.Name),
			"Rendering":      v.Type.Str(),
		}))
	}
	for _, vd := range c.VarDefines {
		if !c.ShouldOutput(vd) {
			continue
		}
		out.WriteString("\n  ")
		out.WriteString(execute("VarDefine", map[string]string{
			"Name":           vd.Name,
			"IdentifierName": common.QuoteIfReserved(vd.Name),
			"VariableName":   vd.Variable.Name,
			"Rendering":      vd.Variable.Type.Str(),
		}))
	}
	for _, f := range c.Functions {
		if !c.ShouldOutput(f) {
			continue
		}
		if f.PassesCompositeByValue() {
			sink.Warnf("function %q passes a struct/union/array by value and is skipped", f.Name)
			continue
		}
		out.WriteString("\n  ")
		out.WriteString(execute("Function", map[string]interface{}{
			"OutputName":      f.OutputName(),
			"ParamList":       paramList(f),
			"ReturnRendering": f.Return.Str(),
		}))
	}
	if !libEmpty {
		out.WriteString("\n")
		out.WriteString(execute("LibObjectFooter", nil))
		out.WriteString("\n\n")
	}

	// Step 4: <libName>Defines object, only when it holds a define.
	if len(c.LiteralDefines) > 0 || len(c.VarDefines) > 0 {
		out.WriteString(execute("DefinesObject", definesObjectView(cfg, c)))
		out.WriteString("\n\n")
	}

	// Step 5: re-import the lib object's own members (spec.md §4.6 step 5;
	// IR.cpp: `s << "import " << objectName << "._\n\n"`) so the
	// Enums/Helpers objects below can resolve typedef names declared
	// inside the @extern object (e.g. struct_foo). Only needed when one of
	// them will actually have content.
	if hasEnum || hasHelpers {
		out.WriteString(execute("ReimportObject", map[string]string{"ObjectName": cfg.ObjectName}))
	}

	// Step 6: <libName>Enums object.
	if hasEnum {
		out.WriteString(execute("EnumsObject", enumsObjectView(cfg, c)))
		out.WriteString("\n\n")
	}

	// Step 7: <libName>Helpers object. The view is built even when no
	// helper class follows, so packed-struct warnings are still recorded.
	helpers := execute("HelpersObject", helpersObjectView(cfg, c, sink))
	if hasHelpers {
		out.WriteString(helpers)
		out.WriteString("\n")
	}

	return out.String(), sink.Diagnostics
}

func paramList(f *ir.Function) string {
	parts := make([]string, 0, len(f.Parameters))
	for i, p := range f.Parameters {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("anonymous%d", i)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", common.QuoteIfReserved(name), p.Type.Str()))
	}
	return strings.Join(parts, ", ")
}

func definesObjectView(cfg Config, c *ir.Container) map[string]interface{} {
	var literals []map[string]string
	for _, l := range c.LiteralDefines {
		if !c.ShouldOutput(l) {
			continue
		}
		literals = append(literals, map[string]string{
			"Name":      l.Name,
			"Rendering": l.Type.Str(),
			"Literal":   l.Literal,
		})
	}
	var varDefines []map[string]string
	for _, vd := range c.VarDefines {
		if !c.ShouldOutput(vd) {
			continue
		}
		varDefines = append(varDefines, map[string]string{
			"Name":         vd.Name,
			"VariableName": vd.Variable.Name,
			"Rendering":    vd.Variable.Type.Str(),
		})
	}
	return map[string]interface{}{
		"LibName":        cfg.LibName,
		"LiteralDefines": literals,
		"VarDefines":     varDefines,
	}
}

func enumsObjectView(cfg Config, c *ir.Container) map[string]interface{} {
	var enums []map[string]interface{}
	for _, e := range c.Enums {
		if !c.ShouldOutput(e) {
			continue
		}
		var enumerators []map[string]interface{}
		for _, en := range e.Enumerators {
			enumerators = append(enumerators, map[string]interface{}{
				"Name":           en.Name,
				"UnderlyingType": e.UnderlyingType,
				"Value":          en.Value,
			})
		}
		enums = append(enums, map[string]interface{}{"Enumerators": enumerators})
	}
	return map[string]interface{}{"LibName": cfg.LibName, "Enums": enums}
}

func helpersObjectView(cfg Config, c *ir.Container, sink diag.Sink) map[string]interface{} {
	var classes []map[string]interface{}
	for _, s := range c.Structs {
		if !c.ShouldOutput(s) {
			continue
		}
		if s.Packed {
			sink.Warnf("struct %q is packed (%s): field access may be incorrect", s.Name, byteSizeDiagnostic("size", s.Size))
		}
		cyclic := len(ir.FindAllCycles(ir.Type(s))) > 0
		if !s.HasHelperMethods(cyclic) {
			continue
		}
		classes = append(classes, helperClassView(s.Name, s.Str(), s.Fields))
	}
	for _, u := range c.Unions {
		if !c.ShouldOutput(u) {
			continue
		}
		cyclic := len(ir.FindAllCycles(ir.Type(u))) > 0
		if !u.HasHelperMethods(cyclic) {
			continue
		}
		classes = append(classes, helperClassView(u.Name, u.Str(), u.Fields))
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i]["Name"].(string) < classes[j]["Name"].(string)
	})
	return map[string]interface{}{"LibName": cfg.LibName, "HelperClasses": classes}
}

func helperClassView(name, storageRendering string, fields []ir.Field) map[string]interface{} {
	var accessors []map[string]interface{}
	for i, f := range fields {
		accessors = append(accessors, map[string]interface{}{
			"Name":           f.Name,
			"IdentifierName": common.QuoteIfReserved(f.Name),
			"TypeRendering":  f.Type.Str(),
			"Index":          i,
		})
	}
	return map[string]interface{}{
		"Name":             name,
		"StorageRendering": storageRendering,
		"Accessors":        accessors,
	}
}

// libObjEmpty mirrors IR::libObjEmpty: the @extern object has nothing to
// hold when there are no functions, no reachable typedef/struct/union, and
// no variables or var-defines (original_source/bindgen/ir/IR.cpp).
func libObjEmpty(c *ir.Container) bool {
	return len(c.Functions) == 0 &&
		!hasOutputtedTypeDef(c) && !hasOutputtedStruct(c) && !hasOutputtedUnion(c) &&
		len(c.VarDefines) == 0 && len(c.Variables) == 0
}

func hasOutputtedTypeDef(c *ir.Container) bool {
	for _, td := range c.TypeDefs {
		if c.ShouldOutput(td) {
			return true
		}
	}
	return false
}

func hasOutputtedStruct(c *ir.Container) bool {
	for _, s := range c.Structs {
		if c.ShouldOutput(s) {
			return true
		}
	}
	return false
}

func hasOutputtedUnion(c *ir.Container) bool {
	for _, u := range c.Unions {
		if c.ShouldOutput(u) {
			return true
		}
	}
	return false
}

func hasOutputtedEnum(c *ir.Container) bool {
	for _, e := range c.Enums {
		if c.ShouldOutput(e) {
			return true
		}
	}
	return false
}

// hasHelperMethods mirrors IR::hasHelperMethods: whether the Helpers object
// would hold at least one class.
func hasHelperMethods(c *ir.Container) bool {
	for _, s := range c.Structs {
		if c.ShouldOutput(s) && s.HasHelperMethods(len(ir.FindAllCycles(ir.Type(s))) > 0) {
			return true
		}
	}
	for _, u := range c.Unions {
		if c.ShouldOutput(u) && u.HasHelperMethods(len(ir.FindAllCycles(ir.Type(u))) > 0) {
			return true
		}
	}
	return false
}

// byteSizeDiagnostic formats a byte count the way the packed-struct
// warning reports it, grounded in the garnet go.mod's direct dependency on
// go-humanize (otherwise unused in the retrieved subset).
func byteSizeDiagnostic(label string, bytesCount int) string {
	return fmt.Sprintf("%s: %s", label, humanize.Bytes(uint64(bytesCount)))
}
