// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/filmdeck/internal/film"
	"github.com/taibuivan/filmdeck/internal/platform/apperr"
)

/*
TestHandler_ServesExternalSchema re-serves records as bare JSON arrays.
*/
func TestHandler_ServesExternalSchema(t *testing.T) {
	source := &fakeSource{
		films:    []film.FilmRecord{filmRecord("0", "c1")},
		comments: map[string][]film.CommentRecord{"0": {commentRecord("c1")}},
	}
	router := film.NewHandler(source).Routes()

	// 1. Films keep their snake_case shape
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/movies", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "film_info")
	assert.Contains(t, raw[0]["user_details"], "already_watched")

	// 2. Unknown film yields an empty array, not null
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/comments/nope", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

/*
TestHandler_LoadError surfaces source failures as 502.
*/
func TestHandler_LoadError(t *testing.T) {
	source := &fakeSource{filmsErr: apperr.LoadError("Film service unreachable", nil)}

	recorder := httptest.NewRecorder()
	film.NewHandler(source).Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/movies", nil))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "LOAD_ERROR")
}
