package check

// Checker is implemented by all check types.
// Each check inspects one aspect of a deployment
// and returns a Result describing what it found.
//
// Implementations:
//   - filecheck.Check: file/directory existence, writability and content
//   - envcheck.Check: variables in an env file or the process environment
//   - registrycheck.Check: symbols listed in a config file
//   - cachecheck.Check: cached artifacts that may be stale
//   - composercheck.Check: installed composer packages
type Checker interface {
	Run(d Deployment) Result
}

// Func adapts a plain function to the Checker interface.
type Func func(d Deployment) Result

// Run calls f(d).
func (f Func) Run(d Deployment) Result {
	return f(d)
}

// Definition is a named check as registered with a runner.
type Definition struct {
	Name    string
	Checker Checker
}
