package domain

import "encoding/json"

// Metadata field names as they appear on the wire.
const (
	metaKeyIsHost  = "isHost"
	metaKeyOnStage = "onStage"
)

// StageMeta is the decoded participant metadata document. It is the only
// mutable state this service coordinates; the transport holds the canonical
// copy. Unknown fields survive a decode/encode round trip via Extra so that
// a stage update never clobbers data some other caller attached.
type StageMeta struct {
	IsHost  bool
	OnStage bool
	Extra   map[string]json.RawMessage
}

// DecodeMeta parses a raw metadata blob. It never fails: empty, null or
// malformed JSON decodes to the zero value, i.e. not host and not on stage.
// Every boundary that reads metadata must go through here so the fail-closed
// default is defined exactly once.
func DecodeMeta(raw string) StageMeta {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return StageMeta{}
	}
	meta := StageMeta{}
	for key, val := range fields {
		switch key {
		case metaKeyIsHost:
			meta.IsHost = decodeBool(val)
		case metaKeyOnStage:
			meta.OnStage = decodeBool(val)
		default:
			if meta.Extra == nil {
				meta.Extra = make(map[string]json.RawMessage)
			}
			meta.Extra[key] = val
		}
	}
	return meta
}

// decodeBool treats anything that is not a JSON true as false.
func decodeBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// Merge applies a caller patch on top of the current document and returns
// the full replacement. Known flag keys override the flags; everything else
// lands in Extra. The receiver is not modified.
func (m StageMeta) Merge(patch map[string]json.RawMessage) StageMeta {
	out := StageMeta{IsHost: m.IsHost, OnStage: m.OnStage}
	if len(m.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(m.Extra)+len(patch))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	for key, val := range patch {
		switch key {
		case metaKeyIsHost:
			out.IsHost = decodeBool(val)
		case metaKeyOnStage:
			out.OnStage = decodeBool(val)
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage, len(patch))
			}
			out.Extra[key] = val
		}
	}
	return out
}

// MarshalJSON renders the document the same way Encode does, so API
// responses and the transport see an identical shape.
func (m StageMeta) MarshalJSON() ([]byte, error) {
	s, err := m.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Encode serializes the full document for a wholesale metadata replacement.
func (m StageMeta) Encode() (string, error) {
	fields := make(map[string]json.RawMessage, len(m.Extra)+2)
	for k, v := range m.Extra {
		fields[k] = v
	}
	host, _ := json.Marshal(m.IsHost)
	stage, _ := json.Marshal(m.OnStage)
	fields[metaKeyIsHost] = host
	fields[metaKeyOnStage] = stage
	buf, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
