package attendance

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice is a user-facing message.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices. Delivery is fire-and-forget.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) {
	if f != nil {
		f(n)
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
