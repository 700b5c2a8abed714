package intake

// Keyboard identifies the markup the chat transport should attach to a reply.
// The core stays transport-agnostic: the Telegram adapter maps these values
// onto concrete reply/inline keyboards.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardCalendar
	KeyboardTimeSlots
	KeyboardCancel
	KeyboardConfirm
	KeyboardMainMenu
)

// Reply is a single outgoing chat message produced by the state machine.
// Text may contain HTML markup supported by the transport.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

func reply(text string, keyboard Keyboard) []Reply {
	return []Reply{{Text: text, Keyboard: keyboard}}
}
