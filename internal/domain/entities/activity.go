package entities

// Activity identifies which engine drives a learner's session.
type Activity string

const (
	ActivityNone     Activity = ""
	ActivityLearning Activity = "learning"
	ActivityReview   Activity = "review"
)
