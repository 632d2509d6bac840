package generator

import (
	"strings"
	"unicode"
)

var commonInitialisms = map[string]struct{}{
	"API":  {},
	"GUID": {},
	"HTML": {},
	"HTTP": {},
	"ID":   {},
	"IP":   {},
	"JSON": {},
	"SQL":  {},
	"UI":   {},
	"UID":  {},
	"UUID": {},
	"URI":  {},
	"URL":  {},
	"XML":  {},
}

func exportName(name string) string {
	return camelCaseName(name, true)
}

func lowerCamel(name string) string {
	return camelCaseName(name, false)
}

func camelCaseName(name string, upperFirst bool) string {
	if name == "" {
		return ""
	}
	snake := strings.ReplaceAll(toSnakeCase(name), "-", "_")
	raw := strings.Split(snake, "_")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, part := range parts {
		upper := strings.ToUpper(part)
		if i == 0 && !upperFirst {
			if _, ok := commonInitialisms[upper]; ok {
				b.WriteString(strings.ToLower(upper))
			} else {
				b.WriteString(strings.ToLower(part))
			}
			continue
		}
		if _, ok := commonInitialisms[upper]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(capitalizeSegment(part))
	}
	return b.String()
}

func capitalizeSegment(segment string) string {
	if segment == "" {
		return segment
	}
	runes := []rune(strings.ToLower(segment))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func toSnakeCase(in string) string {
	if in == "" {
		return in
	}
	runes := []rune(in)
	out := make([]rune, 0, len(runes)*2)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				out = append(out, '_')
			}
			out = append(out, unicode.ToLower(r))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// hookSuffix distinguishes query and mutation suspense hooks.
func hookSuffix(kind OperationKind) string {
	if kind == KindMutation {
		return "SuspenseMutation"
	}
	return "SuspenseQuery"
}

// hookName builds the accessor name, e.g. useGetWeatherSuspenseQuery. An
// operation with an empty name keeps an empty base component.
func hookName(operation Operation) string {
	return "use" + exportName(operation.Name) + hookSuffix(operation.Kind)
}

// repositoryName builds the identifier of the module-level repository
// wiring, e.g. getWeatherRepository.
func repositoryName(operation Operation) string {
	return lowerCamel(operation.Name) + "Repository"
}

// documentName builds the identifier of the emitted operation document,
// e.g. GetWeatherDocument.
func documentName(operation Operation) string {
	return exportName(operation.Name) + "Document"
}

// optionsTypeName builds the name of the generated options interface,
// e.g. GetWeatherHookOptions. The raw document field is never part of it.
func optionsTypeName(operation Operation) string {
	return exportName(operation.Name) + "HookOptions"
}
