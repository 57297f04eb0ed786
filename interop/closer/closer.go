// Package closer adapts a guard scope to the io.Closer shape used by
// close-pool style code. It enables incremental migration of call sites
// structured around Close without pulling guard semantics into them.
package closer

import (
	"errors"
	"io"

	"github.com/NetPo4ki/go-guard/guard"
)

// Closer runs registered close functions in reverse registration order and
// joins their errors into the Close result.
type Closer struct {
	s    *guard.Scope
	err  error
	done bool
}

// New creates a Closer. Options are forwarded to the underlying scope.
func New(optFns ...guard.Option) *Closer {
	return &Closer{s: guard.New(optFns...)}
}

// Defer registers fn to run on Close. A nil fn is ignored.
func (c *Closer) Defer(fn func() error) {
	if fn == nil {
		return
	}
	c.s.OnExit(func() {
		c.err = errors.Join(c.err, fn())
	})
}

// DeferCloser registers cl's Close method.
func (c *Closer) DeferCloser(cl io.Closer) {
	if cl == nil {
		return
	}
	c.Defer(cl.Close)
}

// Close runs the registered functions, last registered first, and returns
// their joined errors. Subsequent calls return the first result without
// running anything again.
func (c *Closer) Close() error {
	if !c.done {
		c.done = true
		c.s.Exit()
	}
	return c.err
}
