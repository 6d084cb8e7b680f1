package leafql

import (
	"fmt"
	"time"

	"github.com/leafql/leafql/internal/schema"
	"github.com/leafql/leafql/value"
)

// Time is a custom GraphQL type representing an instant in time. It
// serializes as an RFC 3339 string and accepts either an RFC 3339
// string or Unix seconds on input.
type Time struct {
	time.Time
}

func (t Time) MarshalGraphQL() value.Output {
	return value.StringOutput(t.Time.Format(time.RFC3339))
}

func (t *Time) UnmarshalGraphQL(in value.Input) error {
	if s, err := in.Str(); err == nil {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}
	if n, err := in.Int(); err == nil {
		t.Time = time.Unix(int64(n), 0).UTC()
		return nil
	}
	if f, err := in.Float(); err == nil {
		t.Time = time.Unix(int64(f), 0).UTC()
		return nil
	}
	return value.Mismatch("Time", in)
}

func (Time) ParseGraphQLToken(tok value.ScalarToken) error {
	switch tok.Kind {
	case value.TokenInt, value.TokenString:
		return nil
	}
	return fmt.Errorf("expected Int or String literal, found %s literal %s", tok.Kind, tok)
}

// registerCommonScalars installs the scalars every schema carries
// beyond the four spec-defined ones.
func registerCommonScalars(reg *schema.Schema) error {
	defs := []ScalarDef{
		ScalarConfig[ID]{
			Name: "ID",
			Description: "The `ID` scalar type represents a unique identifier, often used to " +
				"refetch an object or as key for a cache. The ID type appears in a JSON " +
				"response as a String; however, it is not intended to be human-readable.",
		},
		ScalarConfig[Time]{
			Name:           "Time",
			Description:    "An instant in time, serialized as an RFC 3339 string.",
			SpecifiedByURL: "https://datatracker.ietf.org/doc/html/rfc3339",
		},
	}
	for _, def := range defs {
		if err := def.define(reg); err != nil {
			return err
		}
	}
	return nil
}
