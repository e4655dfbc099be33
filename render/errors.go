package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// errorStrings mirrors gluErrorString for the codes a core context reports
var errorStrings = map[uint32]string{
	gl.NO_ERROR:                      "no error",
	gl.INVALID_ENUM:                  "invalid enumerant",
	gl.INVALID_VALUE:                 "invalid value",
	gl.INVALID_OPERATION:             "invalid operation",
	gl.INVALID_FRAMEBUFFER_OPERATION: "invalid framebuffer operation",
	gl.OUT_OF_MEMORY:                 "out of memory",
}

// ErrorString returns a readable message for a GL error code
func ErrorString(code uint32) string {
	if s, ok := errorStrings[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown error 0x%04x", code)
}

// CheckError drains the GL error queue. It returns nil when no error is
// pending.
func CheckError() error {
	var messages []string
	// A lost context can keep reporting errors, so cap the drain
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		messages = append(messages, ErrorString(code))
	}
	if len(messages) == 0 {
		return nil
	}
	return fmt.Errorf("gl error: %s", strings.Join(messages, ", "))
}
