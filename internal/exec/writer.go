package exec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/leafql/leafql/value"
)

// writeOutput serializes an output value tree, keeping object fields in
// selection order. encoding/json would sort map keys, so objects are
// written by hand.
func writeOutput(buf *bytes.Buffer, out value.Output) {
	switch out.Kind {
	case value.OutputNull:
		buf.WriteString("null")
	case value.OutputScalar:
		writeScalar(buf, out.Scalar)
	case value.OutputList:
		buf.WriteByte('[')
		for i, item := range out.List {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeOutput(buf, item)
		}
		buf.WriteByte(']')
	case value.OutputObject:
		buf.WriteByte('{')
		for i, f := range out.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, f.Name)
			buf.WriteByte(':')
			writeOutput(buf, f.Value)
		}
		buf.WriteByte('}')
	}
}

// writeScalar renders a scalar through its JSON view. Int answers
// before Float so integral variants serialize without a fraction, and
// custom variants fall back to their JSON marshaling or string form.
func writeScalar(buf *bytes.Buffer, s value.Scalar) {
	if s == nil {
		buf.WriteString("null")
		return
	}
	if n, ok := s.AsInt(); ok {
		buf.WriteString(strconv.FormatInt(int64(n), 10))
		return
	}
	if b, ok := s.AsBoolean(); ok {
		buf.WriteString(strconv.FormatBool(b))
		return
	}
	if str, ok := s.AsString(); ok {
		writeString(buf, str)
		return
	}
	if f, ok := s.AsFloat(); ok {
		// NaN and infinities have no JSON form
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")
			return
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return
	}
	if m, ok := s.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			buf.Write(data)
			return
		}
	}
	writeString(buf, s.String())
}

func writeString(buf *bytes.Buffer, s string) {
	data, _ := json.Marshal(s)
	buf.Write(data)
}
