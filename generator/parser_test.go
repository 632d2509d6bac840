package generator

import (
	"strings"
	"testing"
)

const testSchema = `
type Query {
  weather(city: String!, country: String!): Weather
  city(name: String!): City
  currentTime: String!
}

type Mutation {
  updateCity(name: String!): City
}

type Subscription {
  weatherChanged(city: String!): Weather
}

type Weather {
  summary: String!
  temperature: Float!
}

type City {
  name: String!
}
`

func TestAppendDocumentSourceConvertsOperations(t *testing.T) {
	schema, err := LoadSchemaSource("schema.graphqls", testSchema)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	set := &DocumentSet{}
	doc := `
query GetWeather($city: String!, $country: String!) {
  weather(city: $city, country: $country) {
    summary
    temperature
  }
}

mutation UpdateCity($name: String!) {
  updateCity(name: $name) {
    name
  }
}
`
	if err := AppendDocumentSource(set, schema, "weather.graphql", doc); err != nil {
		t.Fatalf("append document: %v", err)
	}
	if len(set.Operations) != 2 {
		t.Fatalf("expected two operations, got %d", len(set.Operations))
	}

	query := set.Operations[0]
	if query.Name != "GetWeather" || query.Kind != KindQuery {
		t.Fatalf("unexpected first operation %q/%q", query.Name, query.Kind)
	}
	if len(query.Variables) != 2 {
		t.Fatalf("expected two variables, got %d", len(query.Variables))
	}
	if query.Variables[0].Name != "city" || query.Variables[1].Name != "country" {
		t.Fatalf("variables must keep declaration order, got %v", query.Variables)
	}
	if query.Variables[0].GraphQLType != "String!" || !query.Variables[0].Required {
		t.Fatalf("unexpected variable typing %+v", query.Variables[0])
	}
	if query.Variables[0].TSType != "string" {
		t.Fatalf("expected TS type string, got %q", query.Variables[0].TSType)
	}
	if !strings.Contains(query.Document, "query GetWeather") {
		t.Fatalf("expected formatted document, got %q", query.Document)
	}

	mutation := set.Operations[1]
	if mutation.Name != "UpdateCity" || mutation.Kind != KindMutation {
		t.Fatalf("unexpected second operation %q/%q", mutation.Name, mutation.Kind)
	}
}

func TestAppendDocumentSourceDropsSubscriptions(t *testing.T) {
	schema, err := LoadSchemaSource("schema.graphqls", testSchema)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	set := &DocumentSet{}
	doc := `
subscription OnWeatherChanged($city: String!) {
  weatherChanged(city: $city) {
    summary
  }
}

query CurrentTime {
  currentTime
}
`
	if err := AppendDocumentSource(set, schema, "subs.graphql", doc); err != nil {
		t.Fatalf("append document: %v", err)
	}
	if len(set.Operations) != 1 {
		t.Fatalf("subscriptions must be filtered, got %d operations", len(set.Operations))
	}
	if set.Operations[0].Name != "CurrentTime" {
		t.Fatalf("expected the query to survive, got %q", set.Operations[0].Name)
	}
	if len(set.Operations[0].Variables) != 0 {
		t.Fatalf("expected a zero-variable operation, got %v", set.Operations[0].Variables)
	}
}

func TestAppendDocumentSourceCollectsFragments(t *testing.T) {
	schema, err := LoadSchemaSource("schema.graphqls", testSchema)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	set := &DocumentSet{}
	doc := `
query GetCity($name: String!) {
  city(name: $name) {
    ...CityFields
  }
}

fragment CityFields on City {
  name
}
`
	if err := AppendDocumentSource(set, schema, "city.graphql", doc); err != nil {
		t.Fatalf("append document: %v", err)
	}
	if len(set.Fragments) != 1 {
		t.Fatalf("expected one fragment, got %d", len(set.Fragments))
	}
	if set.Fragments[0].Name != "CityFields" {
		t.Fatalf("fragment name: got %q", set.Fragments[0].Name)
	}
	if !strings.Contains(set.Fragments[0].Source, "fragment CityFields on City") {
		t.Fatalf("expected formatted fragment source, got %q", set.Fragments[0].Source)
	}
}

func TestAppendDocumentSourceRejectsInvalidDocuments(t *testing.T) {
	schema, err := LoadSchemaSource("schema.graphqls", testSchema)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	set := &DocumentSet{}
	err = AppendDocumentSource(set, schema, "bad.graphql", `query Broken { nonexistentField }`)
	if err == nil {
		t.Fatalf("expected validation failure for unknown field")
	}
}

func TestTSTypeMapping(t *testing.T) {
	schema, err := LoadSchemaSource("schema.graphqls", `
type Query {
  search(term: String, limit: Int, exact: Boolean, score: Float, id: ID, tags: [String!]): String
}
`)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	set := &DocumentSet{}
	doc := `
query Search($term: String, $limit: Int, $exact: Boolean, $score: Float, $id: ID, $tags: [String!]) {
  search(term: $term, limit: $limit, exact: $exact, score: $score, id: $id, tags: $tags)
}
`
	if err := AppendDocumentSource(set, schema, "search.graphql", doc); err != nil {
		t.Fatalf("append document: %v", err)
	}
	want := map[string]string{
		"term":  "string",
		"limit": "number",
		"exact": "boolean",
		"score": "number",
		"id":    "string",
		"tags":  "string[]",
	}
	for _, variable := range set.Operations[0].Variables {
		if got := want[variable.Name]; variable.TSType != got {
			t.Fatalf("variable %q: expected TS type %q, got %q", variable.Name, got, variable.TSType)
		}
		if variable.Required {
			t.Fatalf("variable %q: nullable variables must not be required", variable.Name)
		}
	}
}
