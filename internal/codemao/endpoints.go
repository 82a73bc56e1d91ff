// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package codemao

import "net/http"

// Endpoint is one entry of the API catalog.
type Endpoint struct {
	Method string
	Path   string
}

// LoginPID is the fixed client identifier sent with password logins.
const LoginPID = "65edCTyg"

var (
	// EndpointLogin exchanges identity and password for a token.
	EndpointLogin = Endpoint{http.MethodPost, "/tiger/v3/web/accounts/login"}
	// EndpointLogout invalidates the current token.
	EndpointLogout = Endpoint{http.MethodPost, "/tiger/v3/web/accounts/logout"}
	// EndpointUserDetails returns the logged-in account.
	EndpointUserDetails = Endpoint{http.MethodGet, "/web/users/details"}
	// EndpointMessageCount returns unread message counters.
	EndpointMessageCount = Endpoint{http.MethodGet, "/web/message-record/count"}
)
