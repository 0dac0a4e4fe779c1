package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	indicesmodel "github.com/hitesh22rana/esmigrate/internal/model/indices"
	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

// Client executes index administration and document operations against Elasticsearch.
type Client struct {
	es              *elasticsearch.Client
	includeTypeName bool
}

// GetDocument returns the _source of a document.
func (c *Client) GetDocument(ctx context.Context, index, docType, id string) (json.RawMessage, error) {
	req := esapi.GetRequest{
		Index:      index,
		DocumentID: id,
	}
	if c.includeTypeName {
		req.DocumentType = docType
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to get document %s/%s: %v", index, id, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res, "get document %s/%s", index, id); err != nil {
		return nil, err
	}

	var doc struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to decode document %s/%s: %v", index, id, err)
	}

	return doc.Source, nil
}

// PutDocument creates or replaces a document.
func (c *Client) PutDocument(ctx context.Context, index, docType, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to marshal document %s/%s: %v", index, id, err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
	}
	if c.includeTypeName {
		req.DocumentType = docType
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to index document %s/%s: %v", index, id, err)
	}
	defer res.Body.Close()

	return checkResponse(res, "index document %s/%s", index, id)
}

// IndexExists reports whether the index (or alias) exists.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	res, err := esapi.IndicesExistsRequest{
		Index: []string{index},
	}.Do(ctx, c.es)
	if err != nil {
		return false, status.Errorf(codes.Unavailable, "failed to check index %s: %v", index, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, status.Errorf(codes.Internal, "failed to check index %s: %s", index, res.String())
	}
}

// CreateIndex creates an index from a settings/mappings body.
func (c *Client) CreateIndex(ctx context.Context, index string, body map[string]any) error {
	data, err := json.Marshal(c.wireBody(body))
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to marshal index body %s: %v", index, err)
	}

	req := esapi.IndicesCreateRequest{
		Index: index,
		Body:  bytes.NewReader(data),
	}
	if c.includeTypeName {
		req.IncludeTypeName = &c.includeTypeName
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to create index %s: %v", index, err)
	}
	defer res.Body.Close()

	return checkResponse(res, "create index %s", index)
}

// DeleteIndex deletes an index.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	res, err := esapi.IndicesDeleteRequest{
		Index: []string{index},
	}.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to delete index %s: %v", index, err)
	}
	defer res.Body.Close()

	return checkResponse(res, "delete index %s", index)
}

// GetIndexSettings returns the settings blob of an index.
func (c *Client) GetIndexSettings(ctx context.Context, index string) (indicesmodel.Settings, error) {
	res, err := esapi.IndicesGetSettingsRequest{
		Index: []string{index},
	}.Do(ctx, c.es)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to get settings of %s: %v", index, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res, "get settings of %s", index); err != nil {
		return nil, err
	}

	var body map[string]struct {
		Settings indicesmodel.Settings `json:"settings"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to decode settings of %s: %v", index, err)
	}

	entry, ok := body[index]
	if !ok {
		if len(body) != 1 {
			return nil, status.Errorf(codes.Internal, "settings response for %s holds %d indices", index, len(body))
		}
		for _, e := range body {
			entry = e
		}
	}

	return entry.Settings, nil
}

// GetIndexMapping returns the mappings of an index per document type.
func (c *Client) GetIndexMapping(ctx context.Context, index string) (indicesmodel.Mappings, error) {
	req := esapi.IndicesGetMappingRequest{
		Index: []string{index},
	}
	if c.includeTypeName {
		req.IncludeTypeName = &c.includeTypeName
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to get mapping of %s: %v", index, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res, "get mapping of %s", index); err != nil {
		return nil, err
	}

	var body map[string]struct {
		Mappings map[string]any `json:"mappings"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to decode mapping of %s: %v", index, err)
	}

	entry, ok := body[index]
	if !ok {
		if len(body) != 1 {
			return nil, status.Errorf(codes.Internal, "mapping response for %s holds %d indices", index, len(body))
		}
		for _, e := range body {
			entry = e
		}
	}

	mappings := make(indicesmodel.Mappings, len(entry.Mappings))
	if !c.includeTypeName {
		if len(entry.Mappings) != 0 {
			mappings[DefaultDocumentType] = entry.Mappings
		}
		return mappings, nil
	}

	for docType, schema := range entry.Mappings {
		m, ok := schema.(map[string]any)
		if !ok {
			return nil, status.Errorf(codes.Internal, "mapping of %s for type %s is not an object", index, docType)
		}
		mappings[docType] = m
	}

	return mappings, nil
}

// PutMapping applies a mapping for a document type.
func (c *Client) PutMapping(ctx context.Context, index, docType string, body map[string]any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to marshal mapping %s/%s: %v", index, docType, err)
	}

	req := esapi.IndicesPutMappingRequest{
		Index: []string{index},
		Body:  bytes.NewReader(data),
	}
	if c.includeTypeName {
		req.DocumentType = docType
		req.IncludeTypeName = &c.includeTypeName
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to put mapping %s/%s: %v", index, docType, err)
	}
	defer res.Body.Close()

	return checkResponse(res, "put mapping %s/%s", index, docType)
}

// GetAlias returns the names of the indices bound to alias, sorted.
func (c *Client) GetAlias(ctx context.Context, alias string) ([]string, error) {
	res, err := esapi.IndicesGetAliasRequest{
		Name: []string{alias},
	}.Do(ctx, c.es)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to get alias %s: %v", alias, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res, "get alias %s", alias); err != nil {
		return nil, err
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to decode alias %s: %v", alias, err)
	}

	indices := make([]string, 0, len(body))
	for index := range body {
		indices = append(indices, index)
	}
	sort.Strings(indices)

	return indices, nil
}

// UpdateAliases submits all actions as one request, which the engine applies atomically.
func (c *Client) UpdateAliases(ctx context.Context, actions []AliasAction) error {
	data, err := json.Marshal(map[string]any{
		"actions": actions,
	})
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to marshal alias actions: %v", err)
	}

	res, err := esapi.IndicesUpdateAliasesRequest{
		Body: bytes.NewReader(data),
	}.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to update aliases: %v", err)
	}
	defer res.Body.Close()

	return checkResponse(res, "update aliases")
}

// Reindex copies every document of source into dest and waits for completion.
func (c *Client) Reindex(ctx context.Context, source, dest string, versionType VersionType) error {
	data, err := json.Marshal(map[string]any{
		"source": map[string]any{
			"index": source,
		},
		"dest": map[string]any{
			"index":        dest,
			"version_type": versionType,
		},
	})
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to marshal reindex body: %v", err)
	}

	waitForCompletion := true
	res, err := esapi.ReindexRequest{
		Body:              bytes.NewReader(data),
		WaitForCompletion: &waitForCompletion,
	}.Do(ctx, c.es)
	if err != nil {
		return status.Errorf(codes.Unavailable, "failed to reindex %s into %s: %v", source, dest, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res, "reindex %s into %s", source, dest); err != nil {
		return err
	}

	var result struct {
		TimedOut bool              `json:"timed_out"`
		Failures []json.RawMessage `json:"failures"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return status.Errorf(codes.Internal, "failed to decode reindex response: %v", err)
	}

	if result.TimedOut {
		return status.Errorf(codes.DeadlineExceeded, "reindex %s into %s timed out", source, dest)
	}
	if len(result.Failures) != 0 {
		return status.Errorf(codes.Internal, "reindex %s into %s completed with %d failures: %s",
			source, dest, len(result.Failures), result.Failures[0])
	}

	return nil
}

// wireBody adapts a typed creation body for typeless clusters.
func (c *Client) wireBody(body map[string]any) map[string]any {
	if c.includeTypeName {
		return body
	}

	mappings, ok := body["mappings"].(map[string]any)
	if !ok {
		return body
	}
	schema, ok := mappings[DefaultDocumentType]
	if !ok || len(mappings) != 1 {
		return body
	}

	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = v
	}
	out["mappings"] = schema

	return out
}

// checkResponse turns an error response into a classified error.
func checkResponse(res *esapi.Response, format string, args ...any) error {
	if !res.IsError() {
		return nil
	}

	op := fmt.Sprintf(format, args...)
	raw, _ := io.ReadAll(res.Body)
	reason := strings.TrimSpace(string(raw))

	switch {
	case res.StatusCode == http.StatusNotFound:
		return errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "%s: %s", op, reason)
	case strings.Contains(reason, "resource_already_exists_exception"):
		return errorspkg.New(errorspkg.ErrAlreadyExists, codes.AlreadyExists, "%s: %s", op, reason)
	default:
		return status.Errorf(codes.Internal, "failed to %s: [%d] %s", op, res.StatusCode, reason)
	}
}
