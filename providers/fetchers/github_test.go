package fetchers

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

// configureClient configures a client that intercepts ALL requests and forwards them into the specified handler.
func configureClient(t *testing.T, handleFunc http.Handler) *http.Client {
	t.Helper()
	srv := httptest.NewTLSServer(handleFunc)

	// Configuring so that all the requests go into our handler.
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, network, _ string) (net.Conn, error) {
				return net.Dial(network, srv.Listener.Addr().String())
			},
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

func TestGitHubFetcher_FileContent(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`{
			"content" : "redis>=6.2,<7"
		}`))
	}))

	expected := "redis>=6.2,<7"

	fetcher := NewGitHubFetcher(cl, "test", "testing", "")
	content, err := fetcher.FileContent(context.Background(), "versions.txt")
	if err != nil {
		t.Error(err)
	}
	if string(content) != expected {
		t.Errorf("expected content '%s', got '%s'", expected, string(content))
	}
}

func TestGitHubFetcher_HttpNotFound(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{
			"message": "Not Found",
			"documentation_url": "https://docs.github.com/rest/reference/repos#get-repository-content"
		  }`))
	}))

	fetcher := NewGitHubFetcher(cl, "test", "testing", "")
	_, err := fetcher.FileContent(context.Background(), "versions.txt")
	if err != ErrFileNotFound {
		t.Errorf("expected ErrFileNotFound, got: %v", err)
	}
}

func TestGitHubFetcher_DirectoryError(t *testing.T) {
	cl := configureClient(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`[
			{
			  "name": "versions.txt",
			  "path": "pins/versions.txt",
			  "sha": "2b4a5fccdaf12f98cf8e255affa28cfd7e6a784d",
			  "url": "https://api.github.com/repos/test/testing/contents/pins/versions.txt?ref=master"
			},
			{
			  "name": "staging.txt",
			  "path": "pins/staging.txt",
			  "sha": "5cbfc09fe76804461d5bf2221d8a6e5ceff5c385",
			  "url": "https://api.github.com/repos/test/testing/contents/pins/staging.txt?ref=master"
			}
		  ]`))
	}))

	fetcher := NewGitHubFetcher(cl, "test", "testing", "")
	_, err := fetcher.FileContent(context.Background(), "pins")
	if err == nil {
		t.Error("expected directory error, got none")
	}
}

func TestByteMapFetcher_FileContent(t *testing.T) {
	bf := ByteMapFetcher{Files: map[string][]byte{
		"versions.txt": []byte("etcd=3.5.9"),
	}}

	content, err := bf.FileContent(context.Background(), "versions.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "etcd=3.5.9" {
		t.Errorf("unexpected content: %q", string(content))
	}

	if _, err := bf.FileContent(context.Background(), "missing.txt"); err != ErrFileNotFound {
		t.Errorf("expected ErrFileNotFound, got: %v", err)
	}
}
