package telegram

import "strings"

// Callback action constants.
const (
	actionLearner  = "learner"
	actionActivity = "activity"
	actionStats    = "stats"
	actionStop     = "stop"
)

// Activity sub-actions.
const (
	activityLearn  = "learn"
	activityReview = "review"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param joins the params back together so values containing ':' survive.
func (cd callbackData) param() string {
	return strings.Join(cd.Params, ":")
}

// buildLearnerCallback builds callback data for selecting a learner.
func buildLearnerCallback(learnerID string) string {
	return callbackData{
		Action: actionLearner,
		Params: []string{learnerID},
	}.encode()
}

// buildActivityCallback builds callback data for starting a learning or review session.
func buildActivityCallback(activity string) string {
	return callbackData{
		Action: actionActivity,
		Params: []string{activity},
	}.encode()
}

func buildStatsCallback() string {
	return actionStats
}

func buildStopCallback() string {
	return actionStop
}
