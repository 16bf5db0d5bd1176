package bibliography

import "fmt"

// Notifier is the user-facing surface progress and failures are reported to.
type Notifier interface {
	// Info reports progress, e.g. which source is being queried.
	Info(msg string)

	// Warn reports that source failed and contributed no records.
	Warn(source string, err error)
}

// Level distinguishes collected notices.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// Notice is one collected notification.
type Notice struct {
	Level   Level
	Source  string
	Message string
}

func (n Notice) String() string {
	if n.Level == LevelWarn {
		return fmt.Sprintf("Error accessing the %s API: %s", n.Source, n.Message)
	}
	return n.Message
}

// Collector is a Notifier that records notices for later display.
type Collector struct {
	Notices []Notice
}

// Info records a progress notice.
func (c *Collector) Info(msg string) {
	c.Notices = append(c.Notices, Notice{Level: LevelInfo, Message: msg})
}

// Warn records a source failure.
func (c *Collector) Warn(source string, err error) {
	c.Notices = append(c.Notices, Notice{Level: LevelWarn, Source: source, Message: err.Error()})
}

// Warnings returns only the failure notices.
func (c *Collector) Warnings() []Notice {
	var out []Notice
	for _, n := range c.Notices {
		if n.Level == LevelWarn {
			out = append(out, n)
		}
	}
	return out
}

type nopNotifier struct{}

func (nopNotifier) Info(string)        {}
func (nopNotifier) Warn(string, error) {}
