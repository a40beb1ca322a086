package codec

import (
	"testing"
)

// TestBulkBody verifies the newline-delimited payload layout
func TestBulkBody(t *testing.T) {
	body, err := BulkBody(
		BulkOp{Action: "index", ID: "1", Doc: []byte(`{"msg":"a"}`)},
		BulkOp{Action: "create", Index: "logs", ID: "2", Doc: []byte(`{"msg":"b"}`)},
		BulkOp{Action: "delete", Index: "logs", ID: "3"},
	)
	if err != nil {
		t.Fatalf("BulkBody failed: %v", err)
	}

	want := `{"index":{"_id":"1"}}
{"msg":"a"}
{"create":{"_index":"logs","_id":"2"}}
{"msg":"b"}
{"delete":{"_index":"logs","_id":"3"}}
`
	if string(body) != want {
		t.Errorf("Unexpected bulk body:\ngot:  %q\nwant: %q", body, want)
	}
}

// TestBulkBodyEmptyMeta verifies an action without index and id still
// produces a well-formed action line
func TestBulkBodyEmptyMeta(t *testing.T) {
	body, err := BulkBody(BulkOp{Action: "index", Doc: []byte(`{}`)})
	if err != nil {
		t.Fatalf("BulkBody failed: %v", err)
	}
	if want := "{\"index\":{}}\n{}\n"; string(body) != want {
		t.Errorf("Expected %q, got %q", want, body)
	}
}

// TestBulkBodyValidation covers the rejected payload shapes
func TestBulkBodyValidation(t *testing.T) {
	if _, err := BulkBody(BulkOp{Action: "upsert", Doc: []byte(`{}`)}); err == nil {
		t.Error("Expected an error for an unknown action")
	}
	if _, err := BulkBody(BulkOp{Action: "index", ID: "1"}); err == nil {
		t.Error("Expected an error for an index action without a document")
	}
}

// TestBulkBodyEmpty verifies zero operations yield an empty payload
func TestBulkBodyEmpty(t *testing.T) {
	body, err := BulkBody()
	if err != nil {
		t.Fatalf("BulkBody failed: %v", err)
	}
	if len(body) != 0 {
		t.Errorf("Expected empty body, got %q", body)
	}
}
