package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/russcam/elastic/api"
	"github.com/russcam/elastic/codec"
	transporthttp "github.com/russcam/elastic/transport/http"
)

// fakeNode is a minimal in-memory document store answering the JSON
// HTTP API the codec speaks
type fakeNode struct {
	mu   sync.Mutex
	docs map[string]string // "index/id" -> source
}

func newFakeNode() *fakeNode {
	return &fakeNode{docs: make(map[string]string)}
}

func (n *fakeNode) key(index, id string) string {
	return index + "/" + id
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" && r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")

	// POST /{index}/_search and /{index}/_bulk
	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "_search":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[]}}`))
			return
		case "_bulk":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"errors":false,"items":[]}`))
			return
		}
	}

	// /{index}/_doc/{id}
	if len(parts) != 3 || parts[1] != "_doc" {
		http.Error(w, `{"error":"unknown route"}`, http.StatusBadRequest)
		return
	}
	index, id := parts[0], parts[2]

	n.mu.Lock()
	defer n.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		n.docs[n.key(index, id)] = string(body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":"created"}`))

	case http.MethodGet:
		src, ok := n.docs[n.key(index, id)]
		if !ok {
			http.Error(w, `{"found":false}`, http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"found":true,"_source":` + src + `}`))

	case http.MethodDelete:
		if _, ok := n.docs[n.key(index, id)]; !ok {
			http.Error(w, `{"result":"not_found"}`, http.StatusNotFound)
			return
		}
		delete(n.docs, n.key(index, id))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result":"deleted"}`))

	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func (n *fakeNode) has(index, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.docs[n.key(index, id)]
	return ok
}

// testClient bootstraps a client against a fake node
func testClient(t *testing.T) (*Client, *fakeNode) {
	t.Helper()

	node := newFakeNode()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("Failed to parse test server url: %v", err)
	}

	c, err := New(api.ClientConfig{
		Addresses:             []string{u.Host},
		ConnectionsPerAddress: 2,
		TimeoutSecond:         5,
		SleepIntervalMs:       50,
	}, transporthttp.NewEngineConnector())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(c.Close)

	return c, node
}

type logEntry struct {
	Msg string `json:"msg"`
}

// TestClientPing verifies the bootstrap and a roundtrip on a live pool
func TestClientPing(t *testing.T) {
	c, _ := testClient(t)

	if err := c.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

// TestClientDocumentCycle covers index, get and delete end to end
func TestClientDocumentCycle(t *testing.T) {
	c, _ := testClient(t)

	if err := c.Index("logs", "1", logEntry{Msg: "hello"}); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	_, found, err := c.Get("logs", "1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("Expected the document to be found")
	}

	existed, err := c.Delete("logs", "1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !existed {
		t.Error("Expected the document to have existed")
	}

	if _, found, err = c.Get("logs", "1"); err != nil || found {
		t.Errorf("Expected found=false after delete, got found=%v err=%v", found, err)
	}
}

// TestClientGetMissing verifies a miss is not an error
func TestClientGetMissing(t *testing.T) {
	c, _ := testClient(t)

	_, found, err := c.Get("logs", "nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Expected found=false for a missing document")
	}
}

// TestClientSendIndex verifies fire-and-forget indexing eventually lands
func TestClientSendIndex(t *testing.T) {
	c, node := testClient(t)

	if err := c.SendIndex("logs", "async", logEntry{Msg: "later"}); err != nil {
		t.Fatalf("SendIndex failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !node.has("logs", "async") {
		if time.Now().After(deadline) {
			t.Fatal("Fire-and-forget index never reached the node")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestClientSearch verifies the raw search body comes back
func TestClientSearch(t *testing.T) {
	c, _ := testClient(t)

	body, err := c.Search("logs", []byte(`{"query":{"match_all":{}}}`))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !strings.Contains(string(body), "hits") {
		t.Errorf("Unexpected search body: %s", body)
	}
}

// TestClientBulk verifies the assembled payload is accepted
func TestClientBulk(t *testing.T) {
	c, _ := testClient(t)

	body, err := c.Bulk("logs",
		codec.BulkOp{Action: "index", ID: "1", Doc: []byte(`{"msg":"a"}`)},
		codec.BulkOp{Action: "delete", ID: "2"},
	)
	if err != nil {
		t.Fatalf("Bulk failed: %v", err)
	}
	if !strings.Contains(string(body), "errors") {
		t.Errorf("Unexpected bulk body: %s", body)
	}
}

// TestClientErrorResponse verifies a node error status surfaces as a Go
// error without tearing the connection down
func TestClientErrorResponse(t *testing.T) {
	c, _ := testClient(t)

	// the fake node rejects unknown routes with 400
	if _, err := c.Search("", []byte(`{}`)); err == nil {
		t.Fatal("Expected an error for the rejected request")
	}

	// the pool must still be usable afterwards
	if err := c.Ping(); err != nil {
		t.Fatalf("Ping after error failed: %v", err)
	}
}

// TestClientNoReachableAddress verifies bootstrap fails when nothing
// answers
func TestClientNoReachableAddress(t *testing.T) {
	_, err := New(api.ClientConfig{
		Addresses:     []string{"127.0.0.1:1"}, // reserved port, nothing listens
		TimeoutSecond: 1,
	}, transporthttp.NewEngineConnector())
	if err == nil {
		t.Fatal("Expected bootstrap to fail with no reachable address")
	}
}
