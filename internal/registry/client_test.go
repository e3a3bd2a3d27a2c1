// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProject_DecodesMetadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/sodium" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Project{
			ID:          "AANobbMI",
			Slug:        "sodium",
			Title:       "Sodium",
			Description: "A modern rendering engine",
		}); err != nil {
			t.Errorf("encoding project: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Project(context.Background(), "sodium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != "AANobbMI" || got.Slug != "sodium" || got.Title != "Sodium" {
		t.Errorf("unexpected project: %+v", got)
	}
}

func TestProject_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Project(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProject_ServerErrorIsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Project(context.Background(), "sodium")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.Status)
	}
}

func TestVersions_PreservesRegistryOrder(t *testing.T) {
	t.Parallel()

	versions := []Version{
		{ID: "v3", VersionNumber: "3.0.0"},
		{ID: "v2", VersionNumber: "2.0.0"},
		{ID: "v1", VersionNumber: "1.0.0"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/sodium/version" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(versions); err != nil {
			t.Errorf("encoding versions: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Versions(context.Background(), "sodium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The registry's newest-first ordering must survive the round trip;
	// "latest compatible" selection depends on it.
	wantOrder := []string{"v3", "v2", "v1"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d versions, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("version[%d]: got id %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestVersions_MalformedPayloadIsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"not": "an array"`)); err != nil {
			t.Errorf("writing body: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Versions(context.Background(), "sodium")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
}

func TestSearch_DecodesHits(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "shaders" {
			t.Errorf("expected query=shaders, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("expected limit=5, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SearchResult{
			Hits:      []SearchHit{{ProjectID: "p1", Slug: "iris", Title: "Iris"}},
			TotalHits: 1,
		}); err != nil {
			t.Errorf("encoding result: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "shaders", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Hits) != 1 || got.Hits[0].Slug != "iris" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestDownload_StreamsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("jar-bytes")); err != nil {
			t.Errorf("writing body: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	body, err := client.Download(context.Background(), srv.URL+"/cdn/sodium.jar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(data) != "jar-bytes" {
		t.Errorf("got body %q, want %q", data, "jar-bytes")
	}
}

func TestToken_OnlySentToRegistryHost(t *testing.T) {
	t.Parallel()

	var apiAuth, cdnAuth string

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnAuth = r.Header.Get("Authorization")
	}))
	defer cdn.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Project{ID: "p", Slug: "s"}); err != nil {
			t.Errorf("encoding project: %v", err)
		}
	}))
	defer api.Close()

	client := NewClient(WithBaseURL(api.URL), WithToken("secret"))

	if _, err := client.Project(context.Background(), "s"); err != nil {
		t.Fatalf("project request failed: %v", err)
	}
	if apiAuth != "Bearer secret" {
		t.Errorf("expected bearer token on API request, got %q", apiAuth)
	}

	// Hosts differ only by port, but the comparison is on the full host,
	// so the CDN must not see the token.
	body, err := client.Download(context.Background(), cdn.URL+"/file.jar")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	body.Close()
	if cdnAuth != "" {
		t.Errorf("token leaked to non-registry host: %q", cdnAuth)
	}
}
