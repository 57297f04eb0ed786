package guard

// Kind classifies when a registered action fires.
type Kind int

const (
	// Unconditional actions fire on every exit.
	Unconditional Kind = iota
	// SuccessOnly actions fire only when the scope exits normally.
	SuccessOnly
	// FailureOnly actions fire only when a failure is unwinding at exit.
	FailureOnly
)

func (k Kind) String() string {
	switch k {
	case Unconditional:
		return "exit"
	case SuccessOnly:
		return "success"
	case FailureOnly:
		return "failure"
	default:
		return "unknown"
	}
}

type Option func(*Options)

type Options struct {
	Observer Observer
	Capacity int
}

func defaultOptions() Options { return Options{} }

// WithObserver attaches lifecycle hooks to the scope.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// WithCapacity preallocates room for n pending actions.
func WithCapacity(n int) Option { return func(o *Options) { o.Capacity = n } }

// Observer receives scope and guard lifecycle events.
type Observer interface {
	ScopeCreated()
	ScopeExited(failed bool)
	GuardRegistered(kind Kind)
	GuardFired(kind Kind)
	GuardSkipped(kind Kind)
}

type pending struct {
	fn   func()
	kind Kind
}

// Scope collects deferred actions for one lexical block. It is a one-shot,
// single-goroutine value: create it at the top of the block, defer Exit (or
// ExitErr) immediately, and register actions as resources are acquired.
// Each action runs at most once, in reverse registration order, when Exit
// runs.
type Scope struct {
	guards []pending
	exited bool

	opts Options
	obs  Observer
}

func New(optFns ...Option) *Scope {
	s := &Scope{opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&s.opts)
	}
	s.obs = s.opts.Observer
	if s.opts.Capacity > 0 {
		s.guards = make([]pending, 0, s.opts.Capacity)
	}
	if s.obs != nil {
		s.obs.ScopeCreated()
	}
	return s
}

// OnExit registers fn to run on every exit of the scope.
func (s *Scope) OnExit(fn func()) { s.add(fn, Unconditional) }

// OnSuccess registers fn to run only when the scope exits normally: no
// panic is unwinding and, for ExitErr, the named error is nil.
func (s *Scope) OnSuccess(fn func()) { s.add(fn, SuccessOnly) }

// OnFailure registers fn to run only when the scope exits because a failure
// is propagating.
func (s *Scope) OnFailure(fn func()) { s.add(fn, FailureOnly) }

func (s *Scope) add(fn func(), kind Kind) {
	if fn == nil {
		return
	}
	if s.exited {
		panic("guard: register on exited scope")
	}
	s.guards = append(s.guards, pending{fn: fn, kind: kind})
	if s.obs != nil {
		s.obs.GuardRegistered(kind)
	}
}

// Exited reports whether the scope has already run its actions.
func (s *Scope) Exited() bool { return s.exited }

// Pending returns the number of registered actions that have not yet been
// resolved to fired or skipped.
func (s *Scope) Pending() int { return len(s.guards) }

// Exit runs the pending actions, last registered first. It must be the
// deferred function itself so that it can observe a propagating panic:
//
//	s := guard.New()
//	defer s.Exit()
//
// If a panic is unwinding, Exit treats the exit as failing, runs the actions
// whose gate admits a failing exit, and re-panics with the original value so
// propagation continues. Exit is inert after the first call.
func (s *Scope) Exit() {
	s.exit(recover(), nil)
}

// ExitErr is Exit for functions that report failure through an error value
// instead of (or in addition to) a panic. Defer it with the address of a
// named return:
//
//	func load(path string) (err error) {
//		s := guard.New()
//		defer s.ExitErr(&err)
//		...
//	}
//
// The exit counts as failing when a panic is unwinding or *errp is non-nil
// at exit time.
func (s *Scope) ExitErr(errp *error) {
	s.exit(recover(), errp)
}

func (s *Scope) exit(rec any, errp *error) {
	if s.exited {
		if rec != nil {
			// Exit already ran; keep the new panic propagating.
			panic(rec)
		}
		return
	}
	s.exited = true

	failed := rec != nil || (errp != nil && *errp != nil)
	cur := rec
	for i := len(s.guards) - 1; i >= 0; i-- {
		g := s.guards[i]
		fire := g.kind == Unconditional ||
			(g.kind == SuccessOnly && !failed) ||
			(g.kind == FailureOnly && failed)
		if !fire {
			if s.obs != nil {
				s.obs.GuardSkipped(g.kind)
			}
			continue
		}
		if s.obs != nil {
			s.obs.GuardFired(g.kind)
		}
		if p := protect(g.fn); p != nil {
			if cur != nil {
				cur = &PanicError{Cause: cur, Panic: p}
			} else {
				cur = p
			}
			// Actions registered earlier now see a failing exit.
			failed = true
		}
	}
	s.guards = nil
	if s.obs != nil {
		s.obs.ScopeExited(failed)
	}
	if cur != nil {
		panic(cur)
	}
}

// protect runs one action and reports its panic value, if any, so that the
// remaining actions still get their turn.
func protect(fn func()) (p any) {
	defer func() { p = recover() }()
	fn()
	return nil
}
