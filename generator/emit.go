package generator

import (
	"fmt"
	"strings"
)

// Output is the assembled artifact: prepend lines (imports plus the shared
// repository factory) and the body emitted per qualifying operation.
type Output struct {
	Prepend []string
	Content string
}

// repositoryFactory is the suspense cache the emitted wirings share. Each
// wiring instantiates one repository; resolved keys are cached for the life
// of the module, failed fetches cache nothing, and concurrent reads of an
// unresolved key each start their own fetch.
const repositoryFactory = `interface SuspenseRepository<TArgs extends unknown[], TReturn> {
  read(...args: TArgs): TReturn;
}

const createSuspenseRepository = <TArgs extends unknown[], TReturn>(
  fetcher: (...args: TArgs) => Promise<TReturn>,
  toCacheKey: (...args: TArgs) => string = (...args) =>
    args.length === 0 ? 'default' : JSON.stringify(args)
): SuspenseRepository<TArgs, TReturn> => {
  const cache = new Map<string, TReturn>();
  return {
    read(...args: TArgs): TReturn {
      const key = toCacheKey(...args);
      if (cache.has(key)) {
        return cache.get(key) as TReturn;
      }
      throw fetcher(...args).then((value) => {
        cache.set(key, value);
      });
    },
  };
};`

// Generate classifies every operation in the set and assembles the artifact
// text plus the binding records for the wirings it emitted.
func Generate(set *DocumentSet, cfg Config) (Output, []Binding, error) {
	if set == nil {
		return Output{}, nil, fmt.Errorf("no documents to generate from")
	}

	var (
		decls    []tsDecl
		bindings []Binding
	)
	for _, operation := range set.Operations {
		wiring, ok := Classify(operation)
		if !ok {
			continue
		}
		decls = append(decls, emitWiring(wiring, cfg)...)
		bindings = append(bindings, bindingFor(wiring))
	}

	for _, fragment := range set.Fragments {
		decls = append(decls, tsGQLDocument{
			Name:   exportName(fragment.Name) + "FragmentDoc",
			Export: true,
			Source: fragment.Source,
		})
	}
	for _, fragment := range cfg.ExternalFragments {
		decls = append(decls, tsRaw(fragment.Source))
	}

	return Output{
		Prepend: prependLines(cfg),
		Content: renderDecls(decls),
	}, bindings, nil
}

func prependLines(cfg Config) []string {
	imports := []string{"useApolloClient"}
	if !cfg.UseExternalDocument {
		imports = append([]string{"gql"}, imports...)
	}
	lines := []string{
		tsImport{Names: imports, From: "@apollo/client"}.line(),
		tsImport{Names: []string{"ApolloClient"}, TypeOnly: true, From: "@apollo/client"}.line(),
	}
	if cfg.UseExternalDocument {
		lines = append(lines, tsImport{Star: "Documents", From: cfg.documentsModule()}.line())
	}
	lines = append(lines, "", repositoryFactory)
	return lines
}

// emitWiring produces the declarations for one qualifying operation: the
// options interface, the inline document (unless externally referenced), the
// repository wiring, and the accessor hook.
func emitWiring(wiring Wiring, cfg Config) []tsDecl {
	decls := []tsDecl{optionsInterface(wiring)}

	document := "Documents." + wiring.DocumentName
	if !cfg.UseExternalDocument {
		document = wiring.DocumentName
		decls = append(decls, tsGQLDocument{
			Name:   wiring.DocumentName,
			Source: wiring.Operation.Document,
		})
	}

	decls = append(decls,
		tsConst{Name: wiring.RepositoryName, Value: repositoryValue(wiring, document)},
		accessorHook(wiring),
	)
	return decls
}

func optionsInterface(wiring Wiring) tsInterface {
	fields := make([]tsField, 0, len(wiring.Operation.Variables))
	for _, variable := range wiring.Operation.Variables {
		fields = append(fields, tsField{
			Name:     variable.Name,
			Type:     variable.TSType,
			Optional: !variable.Required,
		})
	}
	return tsInterface{
		Name:   wiring.OptionsType,
		Export: true,
		Fields: []tsField{{
			Name:     "variables",
			Type:     objectLiteral(fields),
			Optional: len(wiring.Operation.Variables) == 0,
		}},
		Extensible: true,
	}
}

// repositoryValue builds the createSuspenseRepository call: one fetcher
// performing exactly one transport call and unwrapping the response payload,
// and the key override joining variable values with "-".
func repositoryValue(wiring Wiring, document string) string {
	action := string(wiring.Action)
	documentField := "query"
	if wiring.Action == ActionMutate {
		documentField = "mutation"
	}
	var b strings.Builder
	b.WriteString("createSuspenseRepository(\n")
	fmt.Fprintf(&b, "  (client: ApolloClient<unknown>, options%s: %s) =>\n", optionalMarker(wiring), wiring.OptionsType)
	fmt.Fprintf(&b, "    client.%s({ ...options, %s: %s }).then((result) => result.data),\n", action, documentField, document)
	fmt.Fprintf(&b, "  (_client: ApolloClient<unknown>, options%s: %s) =>\n", optionalMarker(wiring), wiring.OptionsType)
	b.WriteString("    Object.values(options?.variables ?? {}).join('-')\n")
	b.WriteString(")")
	return b.String()
}

// accessorHook builds the exported hook: obtain the client from ambient
// context and forward (client, options) to the repository read.
func accessorHook(wiring Wiring) tsArrowFunc {
	return tsArrowFunc{
		Name:   wiring.HookName,
		Export: true,
		Params: []tsParam{{
			Name:     "options",
			Type:     wiring.OptionsType,
			Optional: !requiresVariables(wiring.Operation),
		}},
		Body: []string{
			"const client = useApolloClient();",
			fmt.Sprintf("return %s.read(client, options);", wiring.RepositoryName),
		},
	}
}

func optionalMarker(wiring Wiring) string {
	if requiresVariables(wiring.Operation) {
		return ""
	}
	return "?"
}

func requiresVariables(operation Operation) bool {
	for _, variable := range operation.Variables {
		if variable.Required {
			return true
		}
	}
	return false
}
