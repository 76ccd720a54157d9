package recognize

import (
	"bytes"
	"encoding/json"
)

// Request is the body posted to the recognition endpoint.
type Request struct {
	// Image is a PNG data URL.
	Image string `json:"image"`
	// Variables maps symbol names to values the service may substitute.
	Variables map[string]any `json:"dict_of_vars"`
}

// Response is the envelope returned by the recognition endpoint.
type Response struct {
	Data json.RawMessage `json:"data"`
}

// Result is one recognized expression and its evaluated value.
type Result struct {
	Expression string `json:"expr"`
	Result     string `json:"result"`
}

// UnmarshalJSON accepts results encoded either as JSON strings or as bare
// JSON values such as numbers; the latter keep their JSON text.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Expr   json.RawMessage `json:"expr"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	expr, err := rawText(raw.Expr)
	if err != nil {
		return err
	}
	res, err := rawText(raw.Result)
	if err != nil {
		return err
	}
	r.Expression = expr
	r.Result = res
	return nil
}

// String formats the result the way the status line shows it.
func (r Result) String() string {
	return r.Expression + " = " + r.Result
}

func rawText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(v), nil
}
