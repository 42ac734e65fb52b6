package core

// Logger is any leveled logger the app services can write to.
// Implementations may inspect args for known types (error, user info)
// and route them to an error tracker.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
