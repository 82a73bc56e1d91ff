// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package codemao

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Rejected is the server telling us no: bad credentials, a business rule, a
// missing resource. It is a value, not an error.
type Rejected struct {
	Status int
	Code   string
	Reason string
}

func (r *Rejected) String() string {
	if r == nil {
		return ""
	}
	if r.Code != "" {
		return fmt.Sprintf("%s (%s)", r.Reason, r.Code)
	}
	return r.Reason
}

// errorBody covers the error envelopes the API is known to return.
type errorBody struct {
	ErrorCode any    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
	Code      any    `json:"code"`
	Msg       string `json:"msg"`
	Message   string `json:"message"`
}

// newRejected builds a Rejected from a non-2xx response body.
func newRejected(status int, body []byte) *Rejected {
	r := &Rejected{Status: status}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		r.Code = codeString(eb.ErrorCode)
		if r.Code == "" {
			r.Code = codeString(eb.Code)
		}
		for _, m := range []string{eb.ErrorMsg, eb.Msg, eb.Message} {
			if strings.TrimSpace(m) != "" {
				r.Reason = m
				break
			}
		}
	}
	if r.Reason == "" {
		r.Reason = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return r
}

func codeString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return fmt.Sprintf("%.0f", c)
	default:
		return fmt.Sprint(c)
	}
}
