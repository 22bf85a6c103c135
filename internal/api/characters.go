package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"character-search/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "http://localhost:8080/search"

type CharacterAPI struct {
	baseUrl string
	client  *http.Client
}

func NewCharacterAPI(baseURL string) *CharacterAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CharacterAPI{
		baseUrl: baseURL,
		client:  &http.Client{},
	}
}

func (c *CharacterAPI) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Add("accept", "application/json")
	req.Header.Add("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return body, nil
}

// Search asks the backend for characters whose name matches query. Transport
// problems and unexpected payloads are folded into a Failure.
func (c *CharacterAPI) Search(ctx context.Context, query string) Response {
	slog.Debug("Started Search", "query", query)
	searchUrl := fmt.Sprintf("%s?name=%s", c.baseUrl, url.QueryEscape(query))

	body, err := c.doRequest(ctx, searchUrl)
	if err != nil {
		slog.Error("Search fetch err", "error", err)
		return Failure{Reason: err.Error()}
	}
	slog.Debug("Search response", "body", string(body))

	resp, err := decode(body)
	if err != nil {
		slog.Error("Search decode err", "error", err)
		return Failure{Reason: err.Error()}
	}
	slog.Debug("Ended Search")
	return resp
}

func decode(body []byte) (Response, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Failure{Reason: NoResults}, nil
	}

	characters := []model.Character{}
	if err := json.Unmarshal(trimmed, &characters); err != nil {
		return nil, err
	}
	return Success{Characters: characters}, nil
}
