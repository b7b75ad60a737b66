// Package naming decides where the cut recording lands: in place over the
// source by default, optionally renamed with a suffix, converted to another
// container, or redirected by an explicit output argument.
package naming
