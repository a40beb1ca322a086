package codec

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/lithdew/bytesutil"
	"github.com/russcam/elastic/api"
)

// NewJSONCodec creates a new codec speaking the store's JSON HTTP API
func NewJSONCodec() ICodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICodec interface against the JSON HTTP API
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) EncodeRequest(msg *api.Message) (string, string, []byte, error) {
	switch msg.MsgType {
	case api.MsgTPing:
		return http.MethodHead, "/", nil, nil

	case api.MsgTIndex:
		if msg.Index == "" {
			return "", "", nil, fmt.Errorf("index request requires an index name")
		}
		if msg.ID == "" {
			// auto-generated id
			return http.MethodPost, docPath(msg.Index, ""), msg.Body, nil
		}
		return http.MethodPut, docPath(msg.Index, msg.ID), msg.Body, nil

	case api.MsgTGet:
		if msg.Index == "" || msg.ID == "" {
			return "", "", nil, fmt.Errorf("get request requires an index name and document id")
		}
		return http.MethodGet, docPath(msg.Index, msg.ID), nil, nil

	case api.MsgTDelete:
		if msg.Index == "" || msg.ID == "" {
			return "", "", nil, fmt.Errorf("delete request requires an index name and document id")
		}
		return http.MethodDelete, docPath(msg.Index, msg.ID), nil, nil

	case api.MsgTSearch:
		if msg.Index == "" {
			return http.MethodPost, "/_search", msg.Body, nil
		}
		return http.MethodPost, "/" + url.PathEscape(msg.Index) + "/_search", msg.Body, nil

	case api.MsgTBulk:
		if msg.Index == "" {
			return http.MethodPost, "/_bulk", msg.Body, nil
		}
		return http.MethodPost, "/" + url.PathEscape(msg.Index) + "/_bulk", msg.Body, nil

	default:
		return "", "", nil, fmt.Errorf("cannot encode message type: %s", msg.MsgType)
	}
}

func (j jsonCodecImpl) DecodeResponse(msgType api.MessageType, status int, body []byte) (*api.Message, error) {
	switch msgType {
	case api.MsgTPing:
		return api.NewPingResponse(status, statusErr(status, body)), nil

	case api.MsgTIndex:
		return api.NewIndexResponse(status, body, statusErr(status, body)), nil

	case api.MsgTGet:
		// 404 is a well-formed "not found" answer, not an error
		if status == http.StatusNotFound {
			return api.NewGetResponse(status, nil, false, nil), nil
		}
		return api.NewGetResponse(status, body, status == http.StatusOK, statusErr(status, body)), nil

	case api.MsgTDelete:
		if status == http.StatusNotFound {
			return api.NewDeleteResponse(status, false, nil), nil
		}
		return api.NewDeleteResponse(status, status == http.StatusOK, statusErr(status, body)), nil

	case api.MsgTSearch:
		return api.NewSearchResponse(status, body, statusErr(status, body)), nil

	case api.MsgTBulk:
		return api.NewBulkResponse(status, body, statusErr(status, body)), nil

	default:
		return nil, fmt.Errorf("cannot decode message type: %s", msgType)
	}
}

func (j jsonCodecImpl) ContentType(msgType api.MessageType) string {
	if msgType == api.MsgTBulk {
		return "application/x-ndjson"
	}
	return "application/json"
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// docPath builds the document endpoint path for an index and optional id
func docPath(index, id string) string {
	if id == "" {
		return "/" + url.PathEscape(index) + "/_doc"
	}
	return "/" + url.PathEscape(index) + "/_doc/" + url.PathEscape(id)
}

// statusErr converts an error status into an error carrying the node's
// response body. The body slice is owned by the caller at this point, so
// the unsafe conversion saves a copy.
func statusErr(status int, body []byte) error {
	if status < http.StatusBadRequest {
		return nil
	}
	if len(body) == 0 {
		return fmt.Errorf("node answered status %d", status)
	}
	return fmt.Errorf("node answered status %d: %s", status, bytesutil.String(body))
}
