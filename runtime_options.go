package hostobj

// AccessPolicy decides whether caller may observe or relink the prototype
// of target.
type AccessPolicy func(caller CallerContext, target *Object) bool

func allowAll(CallerContext, *Object) bool {
	return true
}

var defaultOptions = options{
	accessPolicy: allowAll,
}

type Option interface {
	apply(*options)
}

type options struct {
	accessPolicy AccessPolicy
	registry     *TableRegistry
}

type funcOption struct {
	f func(*options)
}

func (fdo *funcOption) apply(do *options) {
	fdo.f(do)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithAccessPolicy installs the predicate consulted by getPrototypeOf,
// setPrototypeOf and the __proto__ setter.
// A nil policy allows everything.
func WithAccessPolicy(policy AccessPolicy) Option {
	return newFuncOption(func(o *options) {
		if policy == nil {
			policy = allowAll
		}
		o.accessPolicy = policy
	})
}

// WithTableRegistry makes the runtime build and share its static tables
// through registry instead of the process-wide default.
func WithTableRegistry(registry *TableRegistry) Option {
	return newFuncOption(func(o *options) {
		o.registry = registry
	})
}
