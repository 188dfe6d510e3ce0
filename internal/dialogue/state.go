package dialogue

// State is the booking dialogue position. Transitions are strictly
// forward; only an explicit reset returns to CHAT.
type State string

const (
	StateChat       State = "CHAT"
	StateNameInput  State = "NAME_INPUT"
	StateScheduling State = "SCHEDULING"
	StatePhoneInput State = "PHONE_INPUT"
	StateConclusion State = "CONCLUSION"
)
