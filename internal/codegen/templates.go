package codegen

// These template strings mirror the teacher's golang/templates package
// (one `const <Name> = \`{{- define "..." -}}...{{- end -}}\`` per entity
// kind, composed by template.Must(t.Parse(...)) in newTemplateSet), adapted
// to spec.md §4.7's per-entity textual schemas for the native-FFI dialect
// instead of FIDL's wire-format structs.

const typeDefTemplate = `
{{- define "TypeDef" -}}
type {{ .Name }} = {{ .Rendering }}
{{- end -}}
`

const enumMemberTemplate = `
{{- define "EnumMember" -}}
val {{ .Name }}: {{ .UnderlyingType }} = {{ .Value }}
{{- end -}}
`

const enumsObjectTemplate = `
{{- define "EnumsObject" -}}
object {{ .LibName }}Enums {
{{- range .Enums }}
{{- range .Enumerators }}
  {{ template "EnumMember" . }}
{{- end }}
{{- end }}
}
{{- end -}}
`

const variableTemplate = `
{{- define "Variable" -}}
@native.name("{{ .Name }}")
@native.extern
var {{ .IdentifierName }}: {{ .Rendering }} = extern
{{- end -}}
`

const varDefineTemplate = `
{{- define "VarDefine" -}}
@native.name("{{ .VariableName }}")
@native.extern
var {{ .IdentifierName }}: {{ .Rendering }} = extern
{{- end -}}
`

const functionTemplate = `
{{- define "Function" -}}
def {{ .OutputName }}({{ .ParamList }}): {{ .ReturnRendering }} = extern
{{- end -}}
`

const literalDefineTemplate = `
{{- define "LiteralDefine" -}}
final val {{ .Name }}: {{ .Rendering }} = {{ .Literal }}
{{- end -}}
`

const definesObjectTemplate = `
{{- define "DefinesObject" -}}
object {{ .LibName }}Defines {
{{- range .LiteralDefines }}
  {{ template "LiteralDefine" . }}
{{- end }}
{{- range .VarDefines }}
  {{ template "VarDefine" . }}
{{- end }}
}
{{- end -}}
`

const helperClassTemplate = `
{{- define "HelperClass" -}}
class {{ .Name }}Helper(val underlying: {{ .StorageRendering }}) extends AnyVal {
{{- range .Accessors }}
  def {{ .IdentifierName }}: {{ .TypeRendering }} = !underlying.at{{ .Index }}
{{- end }}
}
{{- end -}}
`

const helpersObjectTemplate = `
{{- define "HelpersObject" -}}
object {{ .LibName }}Helpers {
{{- range .HelperClasses }}
  {{ template "HelperClass" . }}
{{- end }}
}
{{- end -}}
`

const packageLineTemplate = `
{{- define "PackageLine" -}}
package {{ .PackageName }}
{{ end -}}
`

const fixedImportsTemplate = `
{{- define "FixedImports" -}}
import scala.scalanative.unsafe._
import scala.scalanative.unsafe.Nat._
{{ end -}}
`

const libObjectOpenTemplate = `
{{- define "LibObjectOpen" -}}
{{- if .LinkName }}@link("{{ .LinkName }}")
{{ end -}}@extern
object {{ .ObjectName }} {
{{- end -}}
`

const libObjectFooterTemplate = `
{{- define "LibObjectFooter" -}}
}
{{- end -}}
`

const reimportObjectTemplate = `
{{- define "ReimportObject" -}}
import {{ .ObjectName }}._
{{ end -}}
`
