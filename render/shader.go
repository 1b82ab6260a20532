package render

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Shader is SPIR-V bytecode ready to be handed to the driver.
type Shader struct {
	code []uint32
}

// NewShader converts little-endian SPIR-V bytes into words. The length of code
// must be a non-zero multiple of 4.
func NewShader(code []byte) (Shader, error) {
	if len(code) == 0 {
		return Shader{}, errors.WithStack(&BuildError{Kind: LoadShadersError, Reason: "empty shader bytecode"})
	}
	if len(code)%4 != 0 {
		return Shader{}, errors.WithStack(&BuildError{
			Kind:   LoadShadersError,
			Reason: fmt.Sprintf("shader bytecode length %d is not a multiple of 4", len(code)),
		})
	}

	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return Shader{code: words}, nil
}

func (s Shader) Code() []uint32 { return s.code }

// ShaderSet is the fixed vertex + fragment pair of the graphics pipeline.
type ShaderSet struct {
	Vertex   Shader
	Fragment Shader
}
