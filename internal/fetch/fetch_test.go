package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adverify/supplyval/internal/model"
)

func testClient(server *httptest.Server) *Client {
	client := NewClient(5 * time.Second)
	client.Scheme = "http"
	client.HTTPClient = server.Client()
	return client
}

func serverDomain(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

func TestFetchAdsTxt_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ads.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("google.com, pub-1, DIRECT\n"))
	}))
	defer server.Close()

	snap := testClient(server).FetchAdsTxt(context.Background(), serverDomain(server))

	if snap.Status != model.SnapshotStatusSuccess {
		t.Fatalf("Expected success snapshot, got %s: %s", snap.Status, snap.Content)
	}
	if !strings.Contains(snap.Content, "pub-1") {
		t.Errorf("Expected fetched content, got %q", snap.Content)
	}
	if snap.FetchedAt.IsZero() {
		t.Errorf("Expected FetchedAt to be set")
	}
}

func TestFetchAdsTxt_ErrorSnapshotOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	snap := testClient(server).FetchAdsTxt(context.Background(), serverDomain(server))

	if snap.Status != model.SnapshotStatusError {
		t.Errorf("Expected error snapshot, got %s", snap.Status)
	}
	if snap.Content == "" {
		t.Errorf("Expected the failure message in the content")
	}
}

func TestGetByDomain_ParsesDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sellers.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"version": "1.0", "sellers": [{"seller_id": "42", "seller_type": "PUBLISHER"}]}`))
	}))
	defer server.Close()

	dir, err := testClient(server).GetByDomain(context.Background(), serverDomain(server))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if dir == nil || len(dir.Sellers) != 1 {
		t.Fatalf("Expected a directory with one seller, got %+v", dir)
	}
	if dir.Sellers[0].SellerID != "42" {
		t.Errorf("Expected seller 42, got %s", dir.Sellers[0].SellerID)
	}
}

func TestGetByDomain_NotFoundMeansNoDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	dir, err := testClient(server).GetByDomain(context.Background(), serverDomain(server))
	if err != nil {
		t.Fatalf("Expected no error for 404, got: %v", err)
	}
	if dir != nil {
		t.Errorf("Expected nil directory for 404, got %+v", dir)
	}
}

func TestGetByDomain_MalformedDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>service unavailable</html>"))
	}))
	defer server.Close()

	_, err := testClient(server).GetByDomain(context.Background(), serverDomain(server))
	if err == nil {
		t.Errorf("Expected an error for malformed sellers.json")
	}
}
