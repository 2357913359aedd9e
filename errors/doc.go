/*
Package errors implements custom error interfaces for idm.

Reuse the root errors declared in this package as often as possible. An
extension that needs to distinguish a business rule outcome declares it with
RegisterKind, picking one of the root errors as its kind, so that a client can
test both for the specific case and for the category:

	var ErrAlreadySigned = errors.RegisterKind(errors.ErrState, 110, "already signed")

	ErrAlreadySigned.Is(err)  // this exact rule failed
	errors.ErrState.Is(err)   // any state conflict

Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly. Every extension takes its own range
of codes.

Create errors with ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure to attach a stacktrace. If you wrap multiple times, only the first
wrap records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
