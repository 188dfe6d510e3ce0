package leads

import "time"

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusBooked    = "booked"
	StatusClosed    = "closed"

	SourceChat   = "chat"
	SourceManual = "manual"
)

var validStatuses = map[string]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusBooked:    {},
	StatusClosed:    {},
}

var validSources = map[string]struct{}{
	SourceChat:   {},
	SourceManual: {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

func IsValidSource(value string) bool {
	_, ok := validSources[value]
	return ok
}

// Lead is a captured inspection request. Property holds the listing
// title as it read when booking fired; Date is the offered option the
// visitor picked.
type Lead struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	SessionID string    `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Property  string    `bson:"property" json:"property"`
	Date      string    `bson:"date" json:"date"`
	Status    string    `bson:"status" json:"status"`
	Source    string    `bson:"source" json:"source"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type AdminStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted booked closed"`
}

type ListFilter struct {
	Status string
	Source string
}
