// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/filmdeck/internal/platform/apperr"
	"github.com/taibuivan/filmdeck/internal/platform/constants"
)

// maxResponseBytes bounds a single response from the film service.
const maxResponseBytes = 16 << 20

// RESTSource reads the catalogue from the remote film service.
type RESTSource struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewRESTSource creates a client for the service rooted at baseURL.
// token is sent as "Authorization: Basic <token>" when non-empty.
func NewRESTSource(baseURL, token string, timeout time.Duration, logger *slog.Logger) *RESTSource {
	return &RESTSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Films fetches GET {base}/movies.
func (source *RESTSource) Films(context context.Context) ([]FilmRecord, error) {
	var records []FilmRecord
	if err := source.getList(context, "/movies", func(raw json.RawMessage) error {
		var record FilmRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	}); err != nil {
		return nil, err
	}
	return records, nil
}

// Comments fetches GET {base}/comments/{filmID}.
func (source *RESTSource) Comments(context context.Context, filmID string) ([]CommentRecord, error) {
	var records []CommentRecord
	if err := source.getList(context, "/comments/"+url.PathEscape(filmID), func(raw json.RawMessage) error {
		var record CommentRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	}); err != nil {
		return nil, err
	}
	return records, nil
}

// getList fetches a JSON array and hands each element to decode.
// Elements that fail to decode are logged and skipped.
func (source *RESTSource) getList(context context.Context, path string, decode func(json.RawMessage) error) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, source.baseURL+path, nil)
	if err != nil {
		return apperr.LoadError("Film service request is invalid", err)
	}
	request.Header.Set("Accept", "application/json")
	if source.token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Basic "+source.token)
	}

	response, err := source.client.Do(request)
	if err != nil {
		var netError net.Error
		if context.Err() != nil || (errors.As(err, &netError) && netError.Timeout()) {
			return apperr.LoadError("Film service timed out", err)
		}
		return apperr.LoadError("Film service unreachable", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxResponseBytes))
		return apperr.LoadError(
			fmt.Sprintf("Film service returned %d", response.StatusCode),
			fmt.Errorf("GET %s: %s", path, response.Status),
		)
	}

	var elements []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(&elements); err != nil {
		return apperr.LoadError("Film service returned malformed JSON", fmt.Errorf("GET %s: %w", path, err))
	}

	for index, element := range elements {
		if err := decode(element); err != nil {
			source.logger.Warn("catalog_record_dropped",
				slog.String("path", path),
				slog.Int("index", index),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
