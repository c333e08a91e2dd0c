// Package graphql is the transport to the content API: parsed operation
// documents, a JSON-over-HTTP client and error decoding.
package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document is a single named GraphQL operation.
type Document struct {
	Name  string
	Kind  ast.Operation
	Query string
}

// IsMutation reports whether the operation changes upstream state.
func (d Document) IsMutation() bool {
	return d.Kind == ast.Mutation
}

// Parse checks that src holds exactly one named query or mutation.
func Parse(src string) (Document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: src})
	if err != nil {
		return Document{}, fmt.Errorf("parse graphql document: %w", err)
	}
	if len(doc.Operations) != 1 {
		return Document{}, fmt.Errorf("graphql document must contain exactly one operation, got %d", len(doc.Operations))
	}

	op := doc.Operations[0]
	if op.Name == "" {
		return Document{}, fmt.Errorf("graphql operation must be named")
	}
	if op.Operation == ast.Subscription {
		return Document{}, fmt.Errorf("graphql operation %s: subscriptions are not supported", op.Name)
	}
	return Document{Name: op.Name, Kind: op.Operation, Query: src}, nil
}

// MustParse is like Parse but panics on error. It is meant for package-level
// document variables.
func MustParse(src string) Document {
	d, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return d
}
