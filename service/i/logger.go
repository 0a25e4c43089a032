package i

// Logger is the leveled logger services write through.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
	Debug(string)
}
