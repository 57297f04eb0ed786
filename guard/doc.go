// Package guard attaches cleanup actions to the lifetime of a lexical scope.
// A Scope collects registered actions and runs them in reverse registration
// order when the enclosing block exits, each action gated on whether the
// exit was a normal completion or a propagating failure.
package guard
