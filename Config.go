package web

// Config defines a set of configuration values that dictate how the handler
// behaves at a global level.
//
// BasePath, if set, is prepended to every registered route path.
type Config struct {
	ProblemDetailsTypePrefix string
	DebuggingEnabled         bool
	BasePath                 string
}
