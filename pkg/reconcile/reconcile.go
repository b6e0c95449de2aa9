package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Result is the envelope returned to callers for every regeneration request.
// Exactly one of Content or Error is set. RawContent is non-nil exactly when
// the model output could not be parsed, so an empty completion still reports
// raw_content as "".
type Result struct {
	Success    bool            `json:"success"`
	Content    json.RawMessage `json:"content,omitempty"`
	Error      string          `json:"error,omitempty"`
	RawContent *string         `json:"raw_content,omitempty"`
}

// Success wraps parsed content in a successful envelope.
func Success(content json.RawMessage) (result Result) {
	result = Result{
		Success: true,
		Content: content,
	}
	return result
}

// Failure builds an error envelope.
func Failure(message string) (result Result) {
	result = Result{
		Success: false,
		Error:   message,
	}
	return result
}

// Reconcile parses raw model output as JSON. Output that does not parse is
// reported as a failure carrying the raw text; it is never passed through as
// content. provider names the completion service in the error message.
func Reconcile(provider, raw string) (result Result) {
	var parsed json.RawMessage

	err := json.Unmarshal([]byte(raw), &parsed)
	if err != nil {
		result = Failure(fmt.Sprintf("Failed to parse %s response as JSON: %s", provider, err.Error()))
		result.RawContent = &raw
		return result
	}

	result = Success(parsed)
	return result
}

// Raw returns the unparsed model output of a parse failure, or "".
func (r Result) Raw() (raw string) {
	if r.RawContent != nil {
		raw = *r.RawContent
	}
	return raw
}

// ShapeMatches reports whether parsed has the same top-level shape as
// original: the same JSON type, the same keys for objects and the same length
// for arrays. Missing originals always match.
func ShapeMatches(original, parsed json.RawMessage) (matches bool) {
	if len(original) == 0 {
		matches = true
		return matches
	}

	orig := gjson.ParseBytes(original)
	got := gjson.ParseBytes(parsed)

	switch {
	case orig.IsObject():
		if !got.IsObject() {
			return matches
		}
		origMap := orig.Map()
		gotMap := got.Map()
		if len(origMap) != len(gotMap) {
			return matches
		}
		for key := range origMap {
			if _, ok := gotMap[key]; !ok {
				return matches
			}
		}
		matches = true
	case orig.IsArray():
		if !got.IsArray() {
			return matches
		}
		matches = len(orig.Array()) == len(got.Array())
	default:
		matches = orig.Type == got.Type
	}

	return matches
}
