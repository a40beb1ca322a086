package api

import (
	"encoding/json"
	"fmt"
	"testing"
)

// TestMessageTypeString covers the wire names
func TestMessageTypeString(t *testing.T) {
	tests := map[MessageType]string{
		MsgTPing:   "ping",
		MsgTIndex:  "index",
		MsgTGet:    "get",
		MsgTDelete: "delete",
		MsgTSearch: "search",
		MsgTBulk:   "bulk",
		MsgTError:  "error",
		MsgTUnknown: "unknown",
	}
	for mt, want := range tests {
		if got := mt.String(); got != want {
			t.Errorf("MessageType(%d).String() = %q, want %q", mt, got, want)
		}
	}
}

// TestMessageTypeJSON verifies types serialize as strings and roundtrip
func TestMessageTypeJSON(t *testing.T) {
	for _, mt := range []MessageType{MsgTPing, MsgTIndex, MsgTGet, MsgTDelete, MsgTSearch, MsgTBulk, MsgTError} {
		data, err := json.Marshal(mt)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var got MessageType
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal of %s failed: %v", data, err)
		}
		if got != mt {
			t.Errorf("Roundtrip drifted: %v != %v", got, mt)
		}
	}

	var mt MessageType
	if err := json.Unmarshal([]byte(`"teleport"`), &mt); err == nil {
		t.Error("Expected an error for an unknown type name")
	}
}

// TestRequestFactories verifies request constructors fill the fields
// their operation needs
func TestRequestFactories(t *testing.T) {
	if msg := NewPingRequest(); msg.MsgType != MsgTPing {
		t.Errorf("Expected ping, got %v", msg.MsgType)
	}

	msg := NewIndexRequest("logs", "42", []byte(`{}`))
	if msg.MsgType != MsgTIndex || msg.Index != "logs" || msg.ID != "42" || len(msg.Body) == 0 {
		t.Errorf("Index request missing fields: %+v", msg)
	}

	msg = NewGetRequest("logs", "42")
	if msg.MsgType != MsgTGet || msg.Index != "logs" || msg.ID != "42" {
		t.Errorf("Get request missing fields: %+v", msg)
	}

	msg = NewSearchRequest("logs", []byte(`{"query":{"match_all":{}}}`))
	if msg.MsgType != MsgTSearch || msg.Index != "logs" || len(msg.Body) == 0 {
		t.Errorf("Search request missing fields: %+v", msg)
	}
}

// TestResponseFactories verifies error outcomes surface in Err
func TestResponseFactories(t *testing.T) {
	resp := NewGetResponse(200, []byte(`{}`), true, nil)
	if !resp.Found || resp.StatusCode != 200 || resp.Err != "" {
		t.Errorf("Unexpected get response: %+v", resp)
	}

	resp = NewIndexResponse(500, nil, fmt.Errorf("boom"))
	if resp.Err != "boom" {
		t.Errorf("Expected the error message, got %q", resp.Err)
	}

	resp = NewErrorResponse("bad payload")
	if resp.MsgType != MsgTError || resp.Err != "bad payload" {
		t.Errorf("Unexpected error response: %+v", resp)
	}
}

// TestClientConfigDefaults verifies the sleep interval fallback
func TestClientConfigDefaults(t *testing.T) {
	var cfg ClientConfig
	if got := cfg.SleepIntervalOrDefault(); got != DefaultSleepIntervalMs {
		t.Errorf("Expected %d, got %d", DefaultSleepIntervalMs, got)
	}

	cfg.SleepIntervalMs = 250
	if got := cfg.SleepIntervalOrDefault(); got != 250 {
		t.Errorf("Expected 250, got %d", got)
	}
}
