/*
Package errors implements the error handling used by all yieldvote packages.

Every failure is represented by a root error, created once with
Register(code, description) and wrapped at the point of failure:

	return errors.Wrapf(errors.ErrNotFound, "project %s", addr)

Root errors shared by many packages are declared here. Extensions declare
their own root errors in their errors.go file, using a code range of their
own. Use ErrXyz.Is(err) to test if an error was caused by a given root error,
no matter how many times it was wrapped.

The first Wrap call attaches a stacktrace. Format an error with %+v to print it
together with the stacktrace of its creation point.
*/
package errors
