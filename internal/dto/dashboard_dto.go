package dto

type SubjectCount struct {
	SubjectId string `json:"subject_id"`
	Documents int64  `json:"documents"`
}

type DashboardStatsResponse struct {
	TotalDocuments int64          `json:"total_documents"`
	TotalSubjects  int64          `json:"total_subjects"`
	TotalSubtopics int64          `json:"total_subtopics"`
	TotalArticles  int64          `json:"total_articles"`
	BySubject      []SubjectCount `json:"by_subject"`
}
