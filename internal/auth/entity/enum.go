package entity

type Channel int16

const (
	// ChannelUnknown is mean channel is not known / not set.
	ChannelUnknown Channel = 0

	// ChannelEmail mean the passcode is delivered to the user's email address.
	ChannelEmail Channel = 1

	// ChannelSMS mean the passcode is delivered to the user's phone number.
	ChannelSMS Channel = 2
)

func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}
