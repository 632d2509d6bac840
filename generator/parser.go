package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// OperationKind is the operation category of a parsed definition.
// Subscriptions never reach the classifier; they are filtered while loading.
type OperationKind string

const (
	KindQuery    OperationKind = "query"
	KindMutation OperationKind = "mutation"
)

// Variable is one declared operation variable in declaration order.
type Variable struct {
	Name        string
	GraphQLType string
	TSType      string
	Required    bool
}

// Operation is the parsed, typed description of one query or mutation.
type Operation struct {
	Name      string
	Kind      OperationKind
	Variables []Variable
	Document  string
}

// Fragment is a named fragment declaration emitted alongside the wirings.
type Fragment struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// DocumentSet is everything the generator consumes from the parsed inputs.
type DocumentSet struct {
	Operations []Operation
	Fragments  []Fragment
}

// LoadSchemaFile parses and validates the schema at path.
func LoadSchemaFile(path string) (*ast.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return LoadSchemaSource(filepath.Base(path), string(raw))
}

// LoadSchemaSource parses and validates an in-memory schema.
func LoadSchemaSource(name, input string) (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: input})
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	return schema, nil
}

// LoadDocuments parses every matched document file, validates it against the
// schema, and merges the results into one DocumentSet. Globs that match no
// files are not an error; an empty overall match is.
func LoadDocuments(schema *ast.Schema, globs []string) (*DocumentSet, error) {
	paths, err := matchDocuments(globs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no operation documents matched %v", globs)
	}
	return LoadDocumentFiles(schema, paths)
}

// LoadDocumentFiles parses the given document files in order.
func LoadDocumentFiles(schema *ast.Schema, paths []string) (*DocumentSet, error) {
	set := &DocumentSet{}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", path, err)
		}
		if err := AppendDocumentSource(set, schema, filepath.Base(path), string(raw)); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// AppendDocumentSource parses one document and appends its operations and
// fragments to the set. Subscription operations are dropped here, upstream
// of classification.
func AppendDocumentSource(set *DocumentSet, schema *ast.Schema, name, input string) error {
	doc, errList := gqlparser.LoadQuery(schema, input)
	if len(errList) > 0 {
		return fmt.Errorf("parse document %s: %w", name, errList)
	}
	for _, op := range doc.Operations {
		if op.Operation == ast.Subscription {
			continue
		}
		set.Operations = append(set.Operations, convertOperation(op))
	}
	for _, frag := range doc.Fragments {
		set.Fragments = append(set.Fragments, Fragment{
			Name:   frag.Name,
			Source: formatFragment(frag),
		})
	}
	return nil
}

func convertOperation(op *ast.OperationDefinition) Operation {
	kind := KindQuery
	if op.Operation == ast.Mutation {
		kind = KindMutation
	}
	variables := make([]Variable, 0, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		variables = append(variables, Variable{
			Name:        def.Variable,
			GraphQLType: def.Type.String(),
			TSType:      tsType(def.Type),
			Required:    def.Type.NonNull && def.DefaultValue == nil,
		})
	}
	return Operation{
		Name:      op.Name,
		Kind:      kind,
		Variables: variables,
		Document:  formatOperation(op),
	}
}

func formatOperation(op *ast.OperationDefinition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(&ast.QueryDocument{
		Operations: ast.OperationList{op},
	})
	return buf.String()
}

func formatFragment(frag *ast.FragmentDefinition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(&ast.QueryDocument{
		Fragments: ast.FragmentDefinitionList{frag},
	})
	return buf.String()
}

// tsType maps a GraphQL variable type onto the TypeScript type used in the
// generated options interface.
func tsType(t *ast.Type) string {
	if t == nil {
		return "unknown"
	}
	if t.NamedType == "" {
		return tsType(t.Elem) + "[]"
	}
	switch t.NamedType {
	case "String", "ID":
		return "string"
	case "Int", "Float":
		return "number"
	case "Boolean":
		return "boolean"
	default:
		return "unknown"
	}
}
