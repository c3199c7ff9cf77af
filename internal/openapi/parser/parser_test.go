package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scenario/internal/openapi/parser"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      summary: Add a pet
      description: Register a new pet with the shop.
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  pattern: "[A-Za-z ]{2,30}"
                  description: Two to thirty letters
                  x-scenario-rules: Letters and spaces
                tag:
                  type: string
                  default: dog
                age:
                  type: integer
      responses:
        "201":
          description: created
    get:
      responses:
        "200":
          description: ok
`

func TestOperations(t *testing.T) {
	ops, err := parser.New(parser.Options{}).Operations(context.Background(), []byte(petstore))
	require.NoError(t, err)

	assert.Equal(t, []string{"createPet", "get:/pets"}, parser.OperationIDs(ops))

	create := ops["createPet"]
	assert.Equal(t, "POST", create.Method)
	assert.Equal(t, "/pets", create.Path)
	assert.Equal(t, "Add a pet", create.Summary)
	assert.True(t, create.Body.IsRequired("name"))
	assert.False(t, create.Body.IsRequired("tag"))

	name := create.Body.Properties["name"]
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "[A-Za-z ]{2,30}", name.Pattern)
	assert.Equal(t, "Letters and spaces", name.RulesText)
	assert.Equal(t, "dog", create.Body.Properties["tag"].Default)
	assert.Equal(t, "integer", create.Body.Properties["age"].Type)

	assert.Empty(t, ops["get:/pets"].Body.Properties)
}

func TestOperations_Errors(t *testing.T) {
	p := parser.New(parser.Options{})

	_, err := p.Operations(context.Background(), nil)
	assert.Error(t, err)

	_, err = p.Operations(context.Background(), []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Operations(ctx, []byte(petstore))
	assert.ErrorIs(t, err, context.Canceled)
}
