package queries

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex      = errors.New("index name is required")
	ErrMissingVesselName = errors.New("vessel name is required")
)

// HistoryQuery defines the structure of an assessment history lookup
type HistoryQuery struct {
	Index      string
	VesselName string
	Size       int
}

// BuildHistoryQuery builds the search request for a vessel's archived
// assessments, newest first. The match query requires every token of the
// vessel name so "YOUNG SHIN" does not pull in other *SHIN vessels.
func BuildHistoryQuery(hq HistoryQuery) (*esapi.SearchRequest, error) {
	if hq.Index == "" {
		return nil, ErrMissingIndex
	}
	if hq.VesselName == "" {
		return nil, ErrMissingVesselName
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"vesselName": map[string]interface{}{
					"query":    hq.VesselName,
					"operator": "and",
				},
			},
		},
		"sort": []map[string]interface{}{
			{"assessedAt": map[string]interface{}{"order": "desc"}},
		},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{hq.Index},
		Body:   strings.NewReader(string(body)),
		Size:   &hq.Size,
		Pretty: true,
	}

	return &req, nil
}
