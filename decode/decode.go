// Package decode holds the conversion contract a native Go type may
// implement to participate as a GraphQL scalar. Each interface covers
// one operation slot of a scalar binding; a type implements any subset
// and the rest is derived at schema construction time.
package decode

import "github.com/leafql/leafql/value"

// Unmarshaler decodes an input value tree into the receiver. It must
// reject any input that is not a scalar of the expected shape with a
// descriptive error; for values its paired encoder can produce it must
// be the exact inverse.
type Unmarshaler interface {
	UnmarshalGraphQL(input value.Input) error
}

// Marshaler encodes the receiver into an output value tree. It must be
// total: there is no error path, and a panic here is a programming
// defect, not a modeled failure.
type Marshaler interface {
	MarshalGraphQL() value.Output
}

// TokenParser validates a raw scalar literal before coercion runs. It
// is invoked on the zero value of the type during document validation,
// so implementations must not read the receiver.
type TokenParser interface {
	ParseGraphQLToken(t value.ScalarToken) error
}
