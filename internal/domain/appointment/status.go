package appointment

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}
