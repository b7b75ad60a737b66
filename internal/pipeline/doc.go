// Package pipeline runs one recording through commercial removal:
//
//	prepare → detect breaks → parse → extract segments → concatenate →
//	validate → place output → cleanup
//
// Every stage returns an error classified by [ErrorKind]; the controller in
// runner.go maps it to an [Outcome] (and so an exit code), applies the
// retention policy, and never retries.
package pipeline
