package generator

import (
	"fmt"
	"strings"
)

// The emitter builds typed declaration values and renders them at the end,
// instead of concatenating artifact text inline. Formatting lives here;
// naming and typing decisions live in the classifier.

type tsDecl interface {
	render(b *strings.Builder)
}

// tsRaw is a pre-rendered block, used for fragment pass-through sources.
type tsRaw string

func (r tsRaw) render(b *strings.Builder) {
	b.WriteString(strings.TrimRight(string(r), "\n"))
	b.WriteString("\n")
}

// tsImport renders one import statement.
type tsImport struct {
	Names    []string
	Star     string
	TypeOnly bool
	From     string
}

func (i tsImport) line() string {
	var b strings.Builder
	b.WriteString("import ")
	if i.TypeOnly {
		b.WriteString("type ")
	}
	if i.Star != "" {
		fmt.Fprintf(&b, "* as %s", i.Star)
	} else {
		fmt.Fprintf(&b, "{ %s }", strings.Join(i.Names, ", "))
	}
	fmt.Fprintf(&b, " from '%s';", i.From)
	return b.String()
}

// tsField is one property of an interface declaration.
type tsField struct {
	Name     string
	Type     string
	Optional bool
}

// tsInterface renders an interface declaration.
type tsInterface struct {
	Name   string
	Export bool
	Fields []tsField
	// Extensible adds an index signature so unrecognized transport options
	// pass through the bag untouched.
	Extensible bool
}

func (i tsInterface) render(b *strings.Builder) {
	if i.Export {
		b.WriteString("export ")
	}
	fmt.Fprintf(b, "interface %s {\n", i.Name)
	for _, field := range i.Fields {
		optional := ""
		if field.Optional {
			optional = "?"
		}
		fmt.Fprintf(b, "  %s%s: %s;\n", field.Name, optional, field.Type)
	}
	if i.Extensible {
		b.WriteString("  [option: string]: unknown;\n")
	}
	b.WriteString("}\n")
}

// tsConst renders a const declaration with an arbitrary initializer
// expression, which may span multiple lines.
type tsConst struct {
	Name   string
	Export bool
	Value  string
}

func (c tsConst) render(b *strings.Builder) {
	if c.Export {
		b.WriteString("export ")
	}
	fmt.Fprintf(b, "const %s = %s;\n", c.Name, strings.TrimRight(c.Value, "\n"))
}

// tsGQLDocument renders a gql-tagged template const holding one operation or
// fragment source.
type tsGQLDocument struct {
	Name   string
	Export bool
	Source string
}

func (d tsGQLDocument) render(b *strings.Builder) {
	if d.Export {
		b.WriteString("export ")
	}
	fmt.Fprintf(b, "const %s = gql`\n%s`;\n", d.Name, indentBlock(d.Source, "  "))
}

// tsParam is one parameter of an arrow function.
type tsParam struct {
	Name     string
	Type     string
	Optional bool
}

func (p tsParam) render() string {
	optional := ""
	if p.Optional {
		optional = "?"
	}
	if p.Type == "" {
		return p.Name + optional
	}
	return fmt.Sprintf("%s%s: %s", p.Name, optional, p.Type)
}

// tsArrowFunc renders a const-bound arrow function with a block body.
type tsArrowFunc struct {
	Name   string
	Export bool
	Params []tsParam
	Body   []string
}

func (f tsArrowFunc) render(b *strings.Builder) {
	if f.Export {
		b.WriteString("export ")
	}
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = param.render()
	}
	fmt.Fprintf(b, "const %s = (%s) => {\n", f.Name, strings.Join(params, ", "))
	for _, line := range f.Body {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("};\n")
}

func renderDecls(decls []tsDecl) string {
	var b strings.Builder
	for i, decl := range decls {
		if i > 0 {
			b.WriteString("\n")
		}
		decl.render(&b)
	}
	return b.String()
}

// objectLiteral renders an inline TS object type, e.g. { city: string }.
func objectLiteral(fields []tsField) string {
	if len(fields) == 0 {
		return "Record<string, never>"
	}
	parts := make([]string, len(fields))
	for i, field := range fields {
		optional := ""
		if field.Optional {
			optional = "?"
		}
		parts[i] = fmt.Sprintf("%s%s: %s", field.Name, optional, field.Type)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func indentBlock(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
