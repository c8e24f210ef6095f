package logger

// Noop discards every message. It is the default logger of a video.Source.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) Debug(msg string, args ...interface{}) {}

func (l *Noop) Info(msg string, args ...interface{}) {}

func (l *Noop) Warn(msg string, args ...interface{}) {}

func (l *Noop) Error(msg string, args ...interface{}) {}

func (l *Noop) WithComponent(component string) Logger {
	return l
}
