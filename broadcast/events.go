package broadcast

// Event names on the wire. Observers treat every push as best effort
// and reconcile through the snapshot query when they miss one.
const (
	EventPollStart          = "poll:start"
	EventPollUpdate         = "poll:update"
	EventPollEnd            = "poll:end"
	EventPollIdle           = "poll:idle"
	EventParticipantsUpdate = "participants:update"
	EventParticipantKicked  = "participant:kicked"
	EventChatMessage        = "chat:new"
)

type Event struct {
	Name string
	Data interface{}
}
