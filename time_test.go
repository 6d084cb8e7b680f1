package leafql_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafql/leafql"
	"github.com/leafql/leafql/gqltesting"
	"github.com/leafql/leafql/value"
)

func TestTimeUnmarshal(t *testing.T) {
	ref := time.Date(2021, time.April, 20, 12, 3, 4, 0, time.UTC)

	var parsed leafql.Time
	require.NoError(t, parsed.UnmarshalGraphQL(value.ScalarInput(value.String("2021-04-20T12:03:04Z"))))
	assert.True(t, parsed.Equal(ref))

	var fromUnix leafql.Time
	require.NoError(t, fromUnix.UnmarshalGraphQL(value.ScalarInput(value.Int(1618920184))))
	assert.True(t, fromUnix.Equal(ref))

	var bad leafql.Time
	assert.Error(t, bad.UnmarshalGraphQL(value.ScalarInput(value.String("not a time"))))
	assert.Error(t, bad.UnmarshalGraphQL(value.ScalarInput(value.Boolean(true))))
}

func TestTimeMarshal(t *testing.T) {
	ts := leafql.Time{Time: time.Date(2021, time.April, 20, 12, 3, 4, 0, time.UTC)}
	out := ts.MarshalGraphQL()
	s, ok := out.Scalar.AsString()
	require.True(t, ok)
	assert.Equal(t, "2021-04-20T12:03:04Z", s)
}

func TestTimeTokens(t *testing.T) {
	assert.NoError(t, leafql.Time{}.ParseGraphQLToken(value.ScalarToken{Kind: value.TokenString, Text: "2021-04-20T12:03:04Z"}))
	assert.NoError(t, leafql.Time{}.ParseGraphQLToken(value.ScalarToken{Kind: value.TokenInt, Text: "1618920184"}))
	assert.Error(t, leafql.Time{}.ParseGraphQLToken(value.ScalarToken{Kind: value.TokenFloat, Text: "1.5"}))
}

type timeResolver struct{}

func (*timeResolver) Echo(args struct{ At leafql.Time }) leafql.Time {
	return args.At
}

func TestTimeExec(t *testing.T) {
	schema := leafql.MustBuildSchema(&timeResolver{})

	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         schema,
			Query:          `{ echo(at: "2021-04-20T12:03:04Z") }`,
			ExpectedResult: `{"echo": "2021-04-20T12:03:04Z"}`,
		},
		{
			Schema:         schema,
			Query:          `{ echo(at: 1618920184) }`,
			ExpectedResult: `{"echo": "2021-04-20T12:03:04Z"}`,
		},
	})
}

func TestIDLiterals(t *testing.T) {
	var id leafql.ID
	require.NoError(t, id.UnmarshalGraphQL(value.ScalarInput(value.String("abc"))))
	assert.Equal(t, leafql.ID("abc"), id)

	require.NoError(t, id.UnmarshalGraphQL(value.ScalarInput(value.Int(42))))
	assert.Equal(t, leafql.ID("42"), id)

	assert.Error(t, id.UnmarshalGraphQL(value.ScalarInput(value.Boolean(true))))

	assert.NoError(t, leafql.ID("").ParseGraphQLToken(value.ScalarToken{Kind: value.TokenString, Text: "abc"}))
	assert.NoError(t, leafql.ID("").ParseGraphQLToken(value.ScalarToken{Kind: value.TokenInt, Text: "42"}))
	assert.Error(t, leafql.ID("").ParseGraphQLToken(value.ScalarToken{Kind: value.TokenFloat, Text: "1.5"}))
}
