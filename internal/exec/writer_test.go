package exec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafql/leafql/value"
)

func writeToString(out value.Output) string {
	var buf bytes.Buffer
	writeOutput(&buf, out)
	return buf.String()
}

func TestWriteOutputKeepsFieldOrder(t *testing.T) {
	out := value.ObjectOutput(
		value.OutputField{Name: "zebra", Value: value.IntOutput(1)},
		value.OutputField{Name: "alpha", Value: value.StringOutput("x")},
		value.OutputField{Name: "mid", Value: value.NullOutput()},
	)
	assert.Equal(t, `{"zebra":1,"alpha":"x","mid":null}`, writeToString(out))
}

func TestWriteOutputNested(t *testing.T) {
	out := value.ObjectOutput(
		value.OutputField{Name: "items", Value: value.ListOutput(
			value.IntOutput(1),
			value.ObjectOutput(value.OutputField{Name: "ok", Value: value.BooleanOutput(true)}),
		)},
	)
	assert.Equal(t, `{"items":[1,{"ok":true}]}`, writeToString(out))
}

func TestWriteScalarNonFiniteFloats(t *testing.T) {
	assert.Equal(t, "null", writeToString(value.FloatOutput(math.NaN())))
	assert.Equal(t, "null", writeToString(value.FloatOutput(math.Inf(1))))
	assert.Equal(t, "null", writeToString(value.FloatOutput(math.Inf(-1))))
}

func TestWriteScalarVariants(t *testing.T) {
	assert.Equal(t, "3", writeToString(value.IntOutput(3)))
	assert.Equal(t, "1.5", writeToString(value.FloatOutput(1.5)))
	assert.Equal(t, `"hi \"there\""`, writeToString(value.StringOutput(`hi "there"`)))
	assert.Equal(t, "false", writeToString(value.BooleanOutput(false)))
	assert.Equal(t, "null", writeToString(value.NullOutput()))
}

// stamp is a custom variant without primitive capabilities; it renders
// through its String form.
type stamp string

func (stamp) AsInt() (int32, bool)     { return 0, false }
func (stamp) AsFloat() (float64, bool) { return 0, false }
func (stamp) AsString() (string, bool) { return "", false }
func (stamp) AsBoolean() (bool, bool)  { return false, false }
func (s stamp) String() string         { return string(s) }

func TestWriteScalarCustomVariant(t *testing.T) {
	assert.Equal(t, `"2026-01-01"`, writeToString(value.ScalarOutput(stamp("2026-01-01"))))
}
