package codegen

import "github.com/skx/subc/cerrors"

// internalf builds an internal-error (impossible AST shape reached
// codegen) the way cerrors.Wrap does for the other three kinds.
func internalf(format string, args ...interface{}) error {
	return cerrors.Wrap(cerrors.Internal, format, args...)
}
