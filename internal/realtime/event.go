package realtime

import "encoding/json"

// Event names exchanged over a socket channel.
const (
	EventAuthenticate        = "authenticate"
	EventAuthenticated       = "authenticated"
	EventAuthError           = "auth_error"
	EventNewPublication      = "newPublication"
	EventNewNotification     = "newNotification"
	EventNewMessage          = "newMessage"
	EventNotificationsViewed = "notificationsViewed"
)

// Event is the envelope written to and read from a channel.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type inboundEvent struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}
