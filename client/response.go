package client

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hugocs/hugocs/schema"
)

// Response is the json document returned by the comment endpoint.
// Keys are matched case-insensitively, so "message", "Message" and
// "MESSAGE" all fill Message.
type Response struct {
	Message string `json:"message"`
	IsError bool   `json:"isError"`
}

// errorMessage extracts the text shown for a failed submission. A json
// body without a usable message, one that is neither a non-empty string
// nor a valid response document, shows the status text. Other bodies
// show their trimmed text unless they are html.
func errorMessage(status int, body []byte) string {
	var res Response
	if err := json.Unmarshal(body, &res); err == nil {
		if res.Message != "" || schema.Response().Validate(body) == nil {
			return res.Message
		}
		return http.StatusText(status)
	}

	if json.Valid(body) {
		return http.StatusText(status)
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		return text
	}

	return http.StatusText(status)
}
