package domain

// Overlay actions model optimistic updates applied to an in-memory copy of
// the rows before the core backend confirms the mutation. The caller owns
// revert-on-failure; Apply is pure and safe to re-run.

// Overlay action types.
const (
	ActionSetStatus = "set-status"
	ActionAssign    = "assign"
)

// OverlayAction is the tagged union consumed by Apply.
type OverlayAction struct {
	Type          string
	ApplicationID string
	Status        string
	AssigneeID    string
	AssigneeName  string
}

// SetStatusAction builds a set-status overlay action.
func SetStatusAction(applicationID, status string) OverlayAction {
	return OverlayAction{Type: ActionSetStatus, ApplicationID: applicationID, Status: status}
}

// AssignAction builds an assign overlay action. Empty assignee values clear
// the assignment.
func AssignAction(applicationID, assigneeID, assigneeName string) OverlayAction {
	return OverlayAction{
		Type:          ActionAssign,
		ApplicationID: applicationID,
		AssigneeID:    assigneeID,
		AssigneeName:  assigneeName,
	}
}

// Apply returns a new row slice with the action applied. Unknown action
// types and unmatched IDs leave the rows untouched.
func Apply(rows []ApplicationRow, action OverlayAction) []ApplicationRow {
	next := append([]ApplicationRow(nil), rows...)
	for i := range next {
		if next[i].ID != action.ApplicationID {
			continue
		}
		switch action.Type {
		case ActionSetStatus:
			next[i].Status = action.Status
		case ActionAssign:
			next[i].AssignedUserID = action.AssigneeID
			next[i].AssignedUserName = action.AssigneeName
		}
	}
	return next
}
