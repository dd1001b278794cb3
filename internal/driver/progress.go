package driver

// Status is the state of one file in a multi-file run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "lexing"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File   string
	Status Status
	Tokens int
}

// ProgressSink receives events; OnEvent may be called from several workers.
type ProgressSink interface {
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

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
