// Package options provides the functional option machinery used by client
// constructors in this module.
package options

// NewClientOption is implemented by any option that can be passed to a client
// constructor. The type parameter is the client struct the option configures.
// Example:
// ```
//
//	type timeoutOpt struct{ d time.Duration }
//	func (o *timeoutOpt) Apply(c *Client)             { c.timeout = o.d }
//	func (o *timeoutOpt) NewClientOptionName() string { return "timeout" }
//
// ```
type NewClientOption[T any] interface {
	// Apply applies the option to the given client instance.
	Apply(*T)

	// NewClientOptionName returns the name of the option.
	NewClientOptionName() string
}

// ApplyOptions applies each option, in order, to the given instance.
// Nil options are skipped.
func ApplyOptions[T any](target *T, opts ...NewClientOption[T]) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(target)
		}
	}
}
