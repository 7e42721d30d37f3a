package dto

// ProjectScoreResponse enriches a project submission with its derived scores.
type ProjectScoreResponse struct {
	SubmissionResponse
	VoteScore     float64          `json:"vote_score"`
	TotalVotes    int64            `json:"total_votes"`
	VoteBreakdown map[string]int64 `json:"vote_breakdown"`
	FeedbackCount int64            `json:"feedback_count"`
	AverageRating *float64         `json:"average_rating,omitempty"`
}

// ProjectListShowing echoes the pagination and filter applied to a project listing.
type ProjectListShowing struct {
	Limit             int    `json:"limit"`
	Offset            int    `json:"offset"`
	ProjectTypeFilter string `json:"project_type_filter"`
}

// ProjectListResponse wraps a ranked page of project submissions.
type ProjectListResponse struct {
	Projects []ProjectScoreResponse `json:"projects"`
	Total    int64                  `json:"total"`
	Showing  ProjectListShowing     `json:"showing"`
}

// LeaderboardEntry is one ranked row of the cross-submission leaderboard.
type LeaderboardEntry struct {
	Rank          int      `json:"rank"`
	SubmissionID  uint     `json:"submission_id"`
	Title         string   `json:"title"`
	StudentID     string   `json:"student_id"`
	StudentName   string   `json:"student_name"`
	ProjectType   string   `json:"project_type"`
	TotalVotes    int64    `json:"total_votes"`
	VoteScore     float64  `json:"total_vote_score"`
	FeedbackCount int64    `json:"feedback_count"`
	AverageRating *float64 `json:"overall_rating,omitempty"`
}

// LeaderboardResponse wraps the full ranked leaderboard.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Total       int                `json:"total"`
}
