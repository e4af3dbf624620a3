package game

// Wire event names. Inbound intents are decoded by the transport layer;
// outbound events are produced exclusively by the engine.
const (
	EventRoomJoined      = "room:joined"
	EventRoomUpdated     = "room:updated"
	EventRoomError       = "room:error"
	EventPlayerJoined    = "player:joined"
	EventPlayerLeft      = "player:left"
	EventGameStarted     = "game:started"
	EventGameQuestion    = "game:question"
	EventTimerUpdate     = "timer:update"
	EventAnswerSubmitted = "game:answer:submitted"
	EventQuestionEnd     = "game:question:end"
	EventGameFinished    = "game:finished"
)
