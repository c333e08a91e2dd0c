package graphql

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestParse_NamedQuery(t *testing.T) {
	doc, err := Parse(heredoc.Doc(`
		query GetBusiness($id: ID!) {
		  business(where: { id: $id }) { id name }
		}
	`))
	require.NoError(t, err)
	assert.Equal(t, "GetBusiness", doc.Name)
	assert.Equal(t, ast.Query, doc.Kind)
	assert.False(t, doc.IsMutation())
}

func TestParse_Mutation(t *testing.T) {
	doc, err := Parse(`mutation CreateQuote($service: String!) { createQuote(data: { service: $service }) { id } }`)
	require.NoError(t, err)
	assert.True(t, doc.IsMutation())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `query Broken { business(where: { id: "x" }) { id `},
		{"anonymous", `{ businesses { id } }`},
		{"two operations", `query A { a } query B { b }`},
		{"subscription", `subscription Watch { reviews { id } }`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse(`{ x }`) })
	assert.NotPanics(t, func() { MustParse(`query X { x }`) })
}
