package group

// Group is a community group shown on the community page. Groups are static
// seeded content with no approval lifecycle.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Leader      string `json:"leader"`
	MeetingTime string `json:"meetingTime"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}
