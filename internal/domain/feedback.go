package domain

// FeedbackReport is the narrative report returned by the feedback service.
type FeedbackReport struct {
	OverallPerformance    string `json:"overall_performance"`
	Strengths             string `json:"strengths"`
	AreasForImprovement   string `json:"areas_for_improvement"`
	QuestionTypeBreakdown string `json:"question_type_breakdown"`
	NextSteps             string `json:"next_steps"`
}

// IsEmpty reports whether the service returned no content in any section.
func (f *FeedbackReport) IsEmpty() bool {
	return f == nil || *f == FeedbackReport{}
}
