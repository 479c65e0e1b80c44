// Package contact implements the contact-form workflow: decoding the request
// body, validating the required fields and dispatching the submission to the
// store and the mailer.
package contact

import "encoding/json"

// DecodedBody is the result of decoding a request body. It is either
// Structured (a JSON object) or Raw (anything else, kept verbatim).
type DecodedBody interface {
	decodedBody()
}

// Structured is a body that decoded into a JSON object.
type Structured struct {
	Fields map[string]json.RawMessage
}

// Raw is a body that is not a JSON object. It never validates.
type Raw struct {
	Text string
}

func (Structured) decodedBody() {}
func (Raw) decodedBody()        {}

// ParseBody decodes body leniently: malformed JSON, JSON scalars, arrays and
// null all become Raw instead of an error.
func ParseBody(body string) DecodedBody {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil || fields == nil {
		return Raw{Text: body}
	}
	return Structured{Fields: fields}
}

// stringField returns the named field when it is a JSON string, "" otherwise.
func (s Structured) stringField(name string) string {
	raw, ok := s.Fields[name]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}
