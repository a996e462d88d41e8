// internal/events/search.go
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"mergington-activities/internal/models"
)

// RosterIndexMapping keeps activity and email exact-match so the history
// can be filtered per student or per activity.
const RosterIndexMapping = `{
  "mappings": {
    "properties": {
      "id": {"type": "keyword"},
      "type": {"type": "keyword"},
      "activity": {"type": "keyword"},
      "email": {"type": "keyword"},
      "participant_count": {"type": "integer"},
      "occurred_at": {"type": "date"}
    }
  }
}`

// SearchSink indexes each event as a document keyed by event id.
type SearchSink struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchSink(client *elasticsearch.Client, index string) *SearchSink {
	return &SearchSink{client: client, index: index}
}

func (s *SearchSink) Name() string { return "elasticsearch" }

func (s *SearchSink) Publish(ctx context.Context, event models.RosterEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(event.ID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index event: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index event: %s", res.Status())
	}
	return nil
}
