package control

import (
	"encoding/json"
	"strings"

	"github.com/hostsentry/hostsentry-stats/internal/platform"
)

// timestampFields are the reply fields normalized into the canonical date
// format. Both come straight from the daemon in SocketTimeLayout.
var timestampFields = [...]string{"last_keepalive", "last_ack"}

// replyResult is the tagged outcome of decoding one daemon reply. A reply
// is either a structured payload (Data) or a well-formed error envelope
// (ErrMsg); Ok selects which.
type replyResult struct {
	Ok     bool
	Data   map[string]any
	ErrMsg string
}

// decodeReply decodes the raw reply body.
//
// The success path is a JSON object with a "data" field holding the daemon
// state; timestamp fields in it are rewritten into the canonical date
// layout. Anything that fails that shape is an error envelope of the form
// "<status> <message>": everything after the first space is the daemon's
// message. An envelope with no space at all uses the whole body as the
// message rather than guessing at a status token.
func decodeReply(raw []byte, formatter platform.DateFormatter) replyResult {
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		normalizeTimestamps(envelope.Data, formatter)
		return replyResult{Ok: true, Data: envelope.Data}
	}

	body := string(raw)
	if _, msg, found := strings.Cut(body, " "); found {
		return replyResult{ErrMsg: msg}
	}
	return replyResult{ErrMsg: body}
}

// normalizeTimestamps rewrites the known timestamp fields in place. A value
// that is absent, not a string, or not in the source layout is left
// untouched; a daemon that reports "unknown" for a keepalive still gets its
// other fields through.
func normalizeTimestamps(data map[string]any, formatter platform.DateFormatter) {
	for _, field := range timestampFields {
		value, ok := data[field].(string)
		if !ok {
			continue
		}
		if converted, ok := formatter.Reformat(platform.SocketTimeLayout, value); ok {
			data[field] = converted
		}
	}
}
