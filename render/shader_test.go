package render

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewShader(t *testing.T) {
	c := qt.New(t)

	shader, err := NewShader([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	c.Assert(err, qt.IsNil)
	c.Assert(shader.Code(), qt.DeepEquals, []uint32{0x07230203, 0x00010000})
}

func TestNewShaderRejectsBadLength(t *testing.T) {
	c := qt.New(t)

	_, err := NewShader(nil)
	kind, ok := Kind(err)
	c.Assert(ok, qt.IsTrue)
	c.Assert(kind, qt.Equals, LoadShadersError)
	c.Assert(err, qt.ErrorMatches, "LoadShadersError: empty shader bytecode")

	_, err = NewShader(make([]byte, 6))
	kind, _ = Kind(err)
	c.Assert(kind, qt.Equals, LoadShadersError)
	c.Assert(err, qt.ErrorMatches, "LoadShadersError: shader bytecode length 6 is not a multiple of 4")
}

func BenchmarkNewShaderSmall(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		NewShader(data)
	}
}

func BenchmarkNewShaderBig(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		NewShader(data)
	}
}
