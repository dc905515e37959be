package event

const UserSignupDestination string = "user_signup"
const UserSignupDestinationConsumerNotification string = "user_signup_notification"

type UserSignupMessage struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
