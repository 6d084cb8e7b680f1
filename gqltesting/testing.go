// Package gqltesting contains a test harness for running GraphQL
// queries against a schema and comparing the JSON responses.
package gqltesting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"testing"

	"github.com/nsf/jsondiff"

	"github.com/leafql/leafql"
	"github.com/leafql/leafql/errors"
)

// Test is a GraphQL test case to be used with RunTest(s).
type Test struct {
	Context        context.Context
	Schema         *leafql.Schema
	Query          string
	OperationName  string
	Variables      map[string]interface{}
	ExpectedResult string
	ExpectedErrors []*errors.QueryError
}

// RunTests runs the given GraphQL test cases as subtests.
func RunTests(t *testing.T, tests []*Test) {
	if len(tests) == 1 {
		RunTest(t, tests[0])
		return
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			RunTest(t, test)
		})
	}
}

// RunTest runs a single GraphQL test case.
func RunTest(t *testing.T, test *Test) {
	if test.Context == nil {
		test.Context = context.Background()
	}
	result := test.Schema.Exec(test.Context, test.Query, test.OperationName, test.Variables)

	checkErrors(t, test.ExpectedErrors, result.Errors)

	if test.ExpectedResult == "" {
		if result.Data != nil {
			t.Fatalf("got: %s, want no data", result.Data)
		}
		return
	}

	got, err := formatJSON(result.Data)
	if err != nil {
		t.Fatalf("invalid JSON response: %s", err)
	}
	want, err := formatJSON([]byte(test.ExpectedResult))
	if err != nil {
		t.Fatalf("invalid JSON for ExpectedResult: %s", err)
	}

	if !bytes.Equal(got, want) {
		t.Logf("got:  %s", got)
		t.Logf("want: %s", want)
		opts := jsondiff.DefaultConsoleOptions()
		_, diff := jsondiff.Compare(got, want, &opts)
		t.Fatalf("unexpected result\n%s", diff)
	}
}

func formatJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// checkErrors compares the error lists positionally after sorting both.
// Only the fields an expected error sets are compared, so a test can
// assert just the message and path without pinning locations.
func checkErrors(t *testing.T, want, got []*errors.QueryError) {
	sortErrors(want)
	sortErrors(got)

	if len(got) != len(want) {
		t.Fatalf("unexpected number of errors: got %d, want %d: %v", len(got), len(want), got)
	}
	for i, g := range got {
		w := want[i]
		if g.Message != w.Message {
			t.Errorf("unexpected error message: got %q, want %q", g.Message, w.Message)
		}
		if w.Path != nil && fmt.Sprintf("%v", g.Path) != fmt.Sprintf("%v", w.Path) {
			t.Errorf("unexpected error path: got %v, want %v", g.Path, w.Path)
		}
		if w.Rule != "" && g.Rule != w.Rule {
			t.Errorf("unexpected error rule: got %q, want %q", g.Rule, w.Rule)
		}
		if len(w.Locations) != 0 && fmt.Sprintf("%v", g.Locations) != fmt.Sprintf("%v", w.Locations) {
			t.Errorf("unexpected error locations: got %v, want %v", g.Locations, w.Locations)
		}
	}
}

func sortErrors(errs []*errors.QueryError) {
	if len(errs) <= 1 {
		return
	}
	sort.Slice(errs, func(i, j int) bool {
		return fmt.Sprintf("%s %v", errs[i].Message, errs[i].Path) < fmt.Sprintf("%s %v", errs[j].Message, errs[j].Path)
	})
}
