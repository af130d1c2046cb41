package dayplan

// Milestone is one step of the trip progress indicator.
type Milestone struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

const (
	MilestoneSelect  = "Select products"
	MilestoneDraft   = "Draft itinerary"
	MilestoneConfirm = "Confirm bookings & pay"
)

// Progress derives the three milestones. Booking confirmation is tracked by
// the payment side and is always reported as pending here.
func Progress(p Plan, selectionCount int) []Milestone {
	return []Milestone{
		{Label: MilestoneSelect, Done: selectionCount > 0},
		{Label: MilestoneDraft, Done: p.Len() > 0},
		{Label: MilestoneConfirm, Done: false},
	}
}
