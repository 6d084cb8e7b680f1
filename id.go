package leafql

import (
	"fmt"
	"strconv"

	"github.com/leafql/leafql/value"
)

// ID represents GraphQL's "ID" scalar type. It is serialized as a
// string but accepts both Int and String literals on input.
type ID string

func (id ID) MarshalGraphQL() value.Output {
	return value.StringOutput(string(id))
}

func (id *ID) UnmarshalGraphQL(in value.Input) error {
	if s, err := in.Str(); err == nil {
		*id = ID(s)
		return nil
	}
	if n, err := in.Int(); err == nil {
		*id = ID(strconv.FormatInt(int64(n), 10))
		return nil
	}
	return value.Mismatch("ID", in)
}

func (ID) ParseGraphQLToken(t value.ScalarToken) error {
	switch t.Kind {
	case value.TokenInt, value.TokenString:
		return nil
	}
	return fmt.Errorf("expected Int or String literal, found %s literal %s", t.Kind, t)
}
