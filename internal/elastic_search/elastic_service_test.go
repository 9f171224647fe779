package elastic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	esDoc "mazdady-market/internal/types/elastic"
	myErr "mazdady-market/internal/types/errors"
)

type mockTransport struct {
	RoundTripFn func(req *http.Request) (*http.Response, error)
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFn(req)
}

func setupTestService(t *testing.T, transport http.RoundTripper) *ElasticService {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: transport,
	})
	assert.NoError(t, err)

	logger := zaptest.NewLogger(t).Sugar()

	return NewService(client, logger, "test-index")
}

func elasticOKResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testDoc(id string) esDoc.ListingDoc {
	return esDoc.ListingDoc{
		ID:          id,
		Title:       "Vintage camera",
		Description: "Working Zenit-E, minor scratches",
		Category:    "electronics",
		SellerID:    "seller-1",
		UpdatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIndexListing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		doc         esDoc.ListingDoc
		mockFn      func(req *http.Request) (*http.Response, error)
		expectedErr error
	}{
		{
			name: "successful indexing",
			doc:  testDoc("test-id"),
			mockFn: func(req *http.Request) (*http.Response, error) {
				return elasticOKResponse(`{}`), nil
			},
			expectedErr: nil,
		},
		{
			name: "elasticsearch error",
			doc:  testDoc("test-id"),
			mockFn: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
					Body:       io.NopCloser(strings.NewReader(`{"error": "server error"}`)),
				}, nil
			},
			expectedErr: myErr.ErrIndexing,
		},
		{
			name: "request error",
			doc:  testDoc("test-id"),
			mockFn: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection error")
			},
			expectedErr: errors.New("connection error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{
				RoundTripFn: tt.mockFn,
			}

			service := setupTestService(t, transport)
			err := service.IndexListing(context.Background(), tt.doc)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBulkIndex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		docs        []esDoc.ListingDoc
		mockFn      func(req *http.Request) (*http.Response, error)
		expectedErr error
	}{
		{
			name: "successful bulk indexing",
			docs: []esDoc.ListingDoc{testDoc("test-id-1"), testDoc("test-id-2")},
			mockFn: func(req *http.Request) (*http.Response, error) {
				body, err := io.ReadAll(req.Body)
				assert.NoError(t, err)
				assert.Contains(t, string(body), `"_id":"test-id-1"`)
				assert.Contains(t, string(body), `"_id":"test-id-2"`)
				return elasticOKResponse(`{}`), nil
			},
			expectedErr: nil,
		},
		{
			name: "empty docs array",
			docs: []esDoc.ListingDoc{},
			mockFn: func(req *http.Request) (*http.Response, error) {
				t.Error("Request should not be made for empty docs")
				return nil, nil
			},
			expectedErr: nil,
		},
		{
			name: "bulk request error",
			docs: []esDoc.ListingDoc{testDoc("test-id-1")},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("bulk request failed")
			},
			expectedErr: errors.New("bulk request failed"),
		},
		{
			name: "bulk response error",
			docs: []esDoc.ListingDoc{testDoc("test-id-1")},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
					Body:       io.NopCloser(strings.NewReader(`{"error": "bulk error"}`)),
				}, nil
			},
			expectedErr: myErr.ErrIndexing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{
				RoundTripFn: tt.mockFn,
			}

			service := setupTestService(t, transport)
			err := service.BulkIndex(context.Background(), tt.docs)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("returns matching documents", func(t *testing.T) {
		transport := &mockTransport{
			RoundTripFn: func(req *http.Request) (*http.Response, error) {
				body, err := io.ReadAll(req.Body)
				assert.NoError(t, err)
				assert.Contains(t, string(body), `"multi_match"`)
				assert.Contains(t, string(body), `"camera"`)

				return elasticOKResponse(`{
					"hits": {
						"hits": [
							{"_source": {"id": "ad-1", "title": "Vintage camera", "category": "electronics", "sellerId": "seller-1"}},
							{"_source": {"id": "ad-2", "title": "Camera tripod", "category": "electronics", "sellerId": "seller-2"}}
						]
					}
				}`), nil
			},
		}

		service := setupTestService(t, transport)
		docs, err := service.Search(context.Background(), "camera")
		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "ad-1", docs[0].ID)
		assert.Equal(t, "electronics", docs[0].Category)
		assert.Equal(t, "seller-2", docs[1].SellerID)
	})

	t.Run("search error response", func(t *testing.T) {
		transport := &mockTransport{
			RoundTripFn: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
					Body:       io.NopCloser(strings.NewReader(`{"error": "parse error"}`)),
				}, nil
			},
		}

		service := setupTestService(t, transport)
		_, err := service.Search(context.Background(), "camera")
		assert.ErrorIs(t, err, myErr.ErrSearch)
	})
}
