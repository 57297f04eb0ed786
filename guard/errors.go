package guard

import "fmt"

// PanicError is the panic value Exit raises when a guard action panics while
// an earlier failure is still unwinding. Neither value is dropped: Cause is
// the failure that was already propagating, Panic is the value the action
// panicked with. When several actions panic during one exit the errors chain,
// newest outermost.
type PanicError struct {
	Cause any
	Panic any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("guard: action panicked with %v while unwinding from %v", e.Panic, e.Cause)
}

// Unwrap exposes Cause and Panic when they are errors, keeping errors.Is and
// errors.As working across the chain.
func (e *PanicError) Unwrap() []error {
	var errs []error
	if err, ok := e.Cause.(error); ok {
		errs = append(errs, err)
	}
	if err, ok := e.Panic.(error); ok {
		errs = append(errs, err)
	}
	return errs
}
