package value

// OutputKind discriminates the nodes of an output value tree.
type OutputKind int

const (
	OutputNull OutputKind = iota
	OutputScalar
	OutputList
	OutputObject
)

// OutputField is a named member of an object output node. Order is
// significant: it is the response order.
type OutputField struct {
	Name  string
	Value Output
}

// Output is a node of the tree produced by scalar encoders and the
// executor, consumed by the response writer.
type Output struct {
	Kind   OutputKind
	Scalar Scalar
	List   []Output
	Fields []OutputField
}

func NullOutput() Output           { return Output{Kind: OutputNull} }
func ScalarOutput(s Scalar) Output { return Output{Kind: OutputScalar, Scalar: s} }
func ListOutput(items ...Output) Output {
	return Output{Kind: OutputList, List: items}
}
func ObjectOutput(fields ...OutputField) Output {
	return Output{Kind: OutputObject, Fields: fields}
}

// Per-primitive encoding helpers. Explicit encoders that do not care
// about the active union use these; they produce the default variants,
// which any union-aware consumer can still read through the Scalar
// capability set.

func IntOutput(v int32) Output     { return ScalarOutput(Int(v)) }
func FloatOutput(v float64) Output { return ScalarOutput(Float(v)) }
func StringOutput(v string) Output { return ScalarOutput(String(v)) }
func BooleanOutput(v bool) Output  { return ScalarOutput(Boolean(v)) }

func (v Output) IsNull() bool { return v.Kind == OutputNull }
