package domain

// Classification decides what happens to a folder's finished sessions.
type Classification string

const (
	// ClassPro entries are consolidated and pushed to the external tracker.
	ClassPro Classification = "pro"
	// ClassPerso entries stay in the local log.
	ClassPerso Classification = "perso"
	// ClassPending entries wait for an external project assignment.
	ClassPending Classification = "pending"
	// ClassOff folders are not tracked at all.
	ClassOff Classification = "off"
)

// ValidClassifications is the canonical set of accepted classifications.
var ValidClassifications = map[Classification]bool{
	ClassPro: true, ClassPerso: true, ClassPending: true, ClassOff: true,
}

// Billable reports whether sessions with this classification are candidates
// for an external push. Pending and perso entries never leave the local log.
func (c Classification) Billable() bool {
	return c == ClassPro
}
