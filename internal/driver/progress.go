package driver

// Stage describes a step of formatting one file.
type Stage string

const (
	StageRead   Stage = "read"
	StageFormat Stage = "format"
	StageWrite  Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusChanged Status = "changed"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Final reports whether no further events follow for the file.
func (s Status) Final() bool {
	switch s {
	case StatusDone, StatusChanged, StatusCached, StatusError:
		return true
	}
	return false
}

// Event is a progress update for one file. An empty File describes the whole run.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// Sink receives progress events. Implementations must be safe for concurrent use.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(s Sink, evt Event) {
	if s != nil {
		s.OnEvent(evt)
	}
}
