package mdx

import "errors"

// Pipeline stages reported by Stage.
const (
	StageCompile = "compile"
	StageParse   = "parse"
	StageHandler = "handler"
)

// Stage reports which pipeline stage produced err: StageCompile,
// StageParse or StageHandler. It returns "" for nil and for errors that
// did not come from the pipeline, such as context cancellation outside a
// Handler.
func Stage(err error) string {
	var (
		cerr *CompileError
		perr *ParseError
		herr *HandlerError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &herr):
		return StageHandler
	case errors.As(err, &perr):
		return StageParse
	case errors.As(err, &cerr):
		return StageCompile
	default:
		return ""
	}
}
