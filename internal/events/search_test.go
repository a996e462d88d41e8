package events

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/models"
)

// stubTransport answers every request with a fixed status and records it.
type stubTransport struct {
	status   int
	requests []*http.Request
	bodies   []string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	s.requests = append(s.requests, req)
	s.bodies = append(s.bodies, body)

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: s.status,
		Status:     http.StatusText(s.status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(`{"result":"created"}`)),
		Request:    req,
	}, nil
}

func newStubClient(t *testing.T, transport *stubTransport) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://search.test:9200"},
		Transport: transport,
	})
	require.NoError(t, err)
	return client
}

func TestSearchSink_IndexesByEventID(t *testing.T) {
	transport := &stubTransport{status: http.StatusCreated}
	sink := NewSearchSink(newStubClient(t, transport), "roster-events")

	require.NoError(t, sink.Publish(context.Background(), testEvent()))

	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/roster-events/_doc/"+testEvent().ID, req.URL.Path)

	var doc models.RosterEvent
	require.NoError(t, json.Unmarshal([]byte(transport.bodies[0]), &doc))
	assert.Equal(t, testEvent(), doc)
	assert.Equal(t, "elasticsearch", sink.Name())
}

func TestSearchSink_ErrorStatus(t *testing.T) {
	transport := &stubTransport{status: http.StatusBadRequest}
	sink := NewSearchSink(newStubClient(t, transport), "roster-events")

	err := sink.Publish(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index event")
}
