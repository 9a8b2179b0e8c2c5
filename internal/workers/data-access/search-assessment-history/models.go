// internal/workers/data-access/search-assessment-history/models.go
package searchassessmenthistory

type Input struct {
	VesselName string `json:"vesselName"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type Output struct {
	Assessments []map[string]interface{} `json:"assessments"`
	TotalHits   int64                    `json:"totalHits"`
	SearchTime  int64                    `json:"searchTime"` // milliseconds
}
