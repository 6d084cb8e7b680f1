package leafql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

const introspectionQuery = `
  query {
    __schema {
      queryType { name }
      types {
        kind
        name
        description
        specifiedByUrl
        fields(includeDeprecated: true) {
          name
          description
        }
      }
    }
  }
`

// ToJSON returns the schema's introspection result as JSON.
func (s *Schema) ToJSON() ([]byte, error) {
	result := s.Exec(context.Background(), introspectionQuery, "", nil)
	if len(result.Errors) != 0 {
		panic(result.Errors[0])
	}
	indented := new(bytes.Buffer)
	err := json.Indent(indented, result.Data, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("graphql: %s", err)
	}
	return indented.Bytes(), nil
}
