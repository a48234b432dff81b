package clients

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Client is the business entity: a (code, service) pair with Thai and English
// names plus server-maintained audit fields. Every optional field is a plain
// string; values that were absent or null on the wire are "".
type Client struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Service   string `json:"service"`
	NameTh    string `json:"nameTh"`
	NameEn    string `json:"nameEn"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedBy string `json:"updatedBy"`
	UpdatedAt string `json:"updatedAt"`
}

// wireClient is the shape received from the server. Audit ids arrive as
// numbers, timestamps as strings, and any of them may be missing or null.
type wireClient struct {
	ID        int64           `json:"id"`
	Code      json.RawMessage `json:"code"`
	Service   json.RawMessage `json:"service"`
	NameTh    json.RawMessage `json:"nameTh"`
	NameEn    json.RawMessage `json:"nameEn"`
	CreatedBy json.RawMessage `json:"createdBy"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedBy json.RawMessage `json:"updatedBy"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// UnmarshalJSON decodes a server representation and normalises every
// optional field, so list, create and update responses are ingested alike.
func (c *Client) UnmarshalJSON(data []byte) error {
	var w wireClient
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Client{
		ID:        w.ID,
		Code:      normalize(w.Code),
		Service:   normalize(w.Service),
		NameTh:    normalize(w.NameTh),
		NameEn:    normalize(w.NameEn),
		CreatedBy: normalize(w.CreatedBy),
		CreatedAt: normalize(w.CreatedAt),
		UpdatedBy: normalize(w.UpdatedBy),
		UpdatedAt: normalize(w.UpdatedAt),
	}
	return nil
}

// normalize turns an optional scalar into its display string.
// Absent and null become "", strings are unquoted, numbers and booleans keep
// their literal text.
func normalize(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			var v string
			if json.Unmarshal(raw, &v) == nil {
				return v
			}
			return strings.Trim(string(raw), `"`)
		}
		return s
	}
	return string(raw)
}

// Form is the editable part of a Client as entered in a dialog.
type Form struct {
	Code    string
	Service string
	NameTh  string
	NameEn  string
}

// Trimmed returns the form with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Code:    strings.TrimSpace(f.Code),
		Service: strings.TrimSpace(f.Service),
		NameTh:  strings.TrimSpace(f.NameTh),
		NameEn:  strings.TrimSpace(f.NameEn),
	}
}

// FormFrom pre-populates a form from a cached client.
func FormFrom(c Client) Form {
	return Form{Code: c.Code, Service: c.Service, NameTh: c.NameTh, NameEn: c.NameEn}
}

type createRequest struct {
	Code      string `json:"code"`
	Service   string `json:"service"`
	NameTh    string `json:"nameTh"`
	NameEn    string `json:"nameEn"`
	CreatedBy int    `json:"createdBy"`
	UpdatedBy int    `json:"updatedBy"`
}

// updateRequest omits code: it is immutable after creation.
type updateRequest struct {
	Service   string `json:"service"`
	NameTh    string `json:"nameTh"`
	NameEn    string `json:"nameEn"`
	UpdatedBy int    `json:"updatedBy"`
}

// DisplayName combines the Thai and English names the way the delete
// confirmation shows them.
func (c Client) DisplayName() string {
	return c.NameTh + " / " + c.NameEn
}
