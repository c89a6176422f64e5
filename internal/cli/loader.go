package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/qsafe/qloop/internal/compiler"
	"github.com/qsafe/qloop/internal/ir"
)

// LoadError reports a failure to load a loop spec file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadLoopFile reads and compiles a single CUE loop spec file.
//
// The file must contain a top-level "loop" struct:
//
//	loop: {
//		function:   "xor_one"
//		iterations: 3
//		inputs:     [0, 1]
//	}
func LoadLoopFile(path string) (*ir.LoopSpec, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("loop spec not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading loop spec: %v", err)}
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing CUE: %v", err)}
	}

	loopVal := value.LookupPath(cue.ParsePath("loop"))
	if !loopVal.Exists() {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("no top-level \"loop\" struct in %s", path)}
	}

	spec, err := compiler.CompileLoop(loopVal)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: err.Error()}
	}
	return spec, nil
}
