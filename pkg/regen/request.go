package regen

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Request is the inbound regeneration request.
type Request struct {
	Section            string          `json:"section"`
	Content            json.RawMessage `json:"content,omitempty"`
	IsFullRegeneration bool            `json:"is_full_regeneration"`
	UseFantasy         bool            `json:"use_fantasy"`
}

// DecodeRequest parses an HTTP body. An empty body, JSON null or an empty
// object all count as no data.
func DecodeRequest(body []byte) (req Request, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		err = &Error{Kind: KindValidation, Message: "No data provided"}
		return req, err
	}

	if !json.Valid(trimmed) {
		var probe interface{}
		decodeErr := json.Unmarshal(trimmed, &probe)
		err = &Error{Kind: KindValidation, Message: "Invalid JSON body: " + decodeErr.Error()}
		return req, err
	}

	parsed := gjson.ParseBytes(trimmed)
	if !parsed.IsObject() || len(parsed.Map()) == 0 {
		err = &Error{Kind: KindValidation, Message: "No data provided"}
		return req, err
	}

	err = json.Unmarshal(trimmed, &req)
	if err != nil {
		err = &Error{Kind: KindValidation, Message: "Invalid JSON body: " + err.Error()}
		return req, err
	}

	return req, err
}

// RegenerateTarget returns content.regenerate_target when content is an
// object carrying a string under that key, and "" otherwise.
func RegenerateTarget(content json.RawMessage) (target string) {
	if len(content) == 0 {
		return target
	}

	value := gjson.GetBytes(content, "regenerate_target")
	if value.Type == gjson.String {
		target = value.String()
	}

	return target
}
