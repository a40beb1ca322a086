package codec

import (
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// BulkOp is one entry of a bulk payload: an action with the document it
// applies to. Doc is ignored for delete actions.
type BulkOp struct {
	Action string // "index", "create" or "delete"
	Index  string // optional when the bulk request targets an index
	ID     string
	Doc    []byte
}

// BulkBody assembles the newline-delimited body for a bulk request. The
// returned slice is freshly allocated; the scratch buffer comes from a
// shared pool to keep allocation pressure low for large payloads.
func BulkBody(ops ...BulkOp) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, op := range ops {
		switch op.Action {
		case "index", "create", "delete":
		default:
			return nil, fmt.Errorf("unknown bulk action: %q", op.Action)
		}

		// action line
		buf.WriteString(`{"`)
		buf.WriteString(op.Action)
		buf.WriteString(`":{`)
		sep := false
		if op.Index != "" {
			buf.WriteString(`"_index":`)
			buf.WriteString(strconv.Quote(op.Index))
			sep = true
		}
		if op.ID != "" {
			if sep {
				buf.WriteByte(',')
			}
			buf.WriteString(`"_id":`)
			buf.WriteString(strconv.Quote(op.ID))
		}
		buf.WriteString("}}\n")

		// source line
		if op.Action != "delete" {
			if len(op.Doc) == 0 {
				return nil, fmt.Errorf("bulk %s action requires a document", op.Action)
			}
			buf.Write(op.Doc)
			buf.WriteByte('\n')
		}
	}

	return append([]byte(nil), buf.B...), nil
}
