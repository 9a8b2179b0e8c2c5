// internal/workers/data-access/search-assessment-history/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type SearchResult struct {
	Assessments []map[string]interface{}
	TotalHits   int64
	Took        int64
}

func Execute(ctx context.Context, esClient *elasticsearch.Client, hq HistoryQuery) (*SearchResult, error) {
	if hq.Size > 100 {
		hq.Size = 100
	}
	if hq.Size < 1 {
		hq.Size = 10
	}

	req, err := BuildHistoryQuery(hq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits := r["hits"].(map[string]interface{})
	total := hits["total"].(map[string]interface{})["value"].(float64)

	var assessments []map[string]interface{}
	for _, hit := range hits["hits"].([]interface{}) {
		source := hit.(map[string]interface{})["_source"].(map[string]interface{})
		assessments = append(assessments, source)
	}

	return &SearchResult{
		Assessments: assessments,
		TotalHits:   int64(total),
		Took:        time.Since(start).Milliseconds(),
	}, nil
}
