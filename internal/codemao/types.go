// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package codemao

import "github.com/aumiao/aumiao/internal/security"

// LoginRequest is the body of EndpointLogin.
type LoginRequest struct {
	PID      string          `json:"pid"`
	Identity string          `json:"identity"`
	Password security.Secret `json:"-"`
}

// wire returns the JSON body with the password revealed. It is the only
// place the password leaves its Secret wrapper.
func (r LoginRequest) wire() map[string]string {
	return map[string]string{
		"pid":      r.PID,
		"identity": r.Identity,
		"password": r.Password.Reveal(),
	}
}

// LoginInfo is the payload of a successful login.
type LoginInfo struct {
	UserInfo struct {
		ID          int64  `json:"id"`
		Nickname    string `json:"nickname"`
		AvatarURL   string `json:"avatar_url"`
		Fullname    string `json:"fullname"`
		Sex         int    `json:"sex"`
		Birthday    int64  `json:"birthday"`
		QQ          string `json:"qq"`
		Description string `json:"description"`
	} `json:"user_info"`
	Auth struct {
		Token          string `json:"token"`
		Email          string `json:"email"`
		PhoneNumber    string `json:"phone_number"`
		HasPassword    bool   `json:"has_password"`
		IsWeakPassword int    `json:"is_weak_password"`
	} `json:"auth"`
}

// UserDetails is the payload of EndpointUserDetails.
type UserDetails struct {
	ID          int64  `json:"id" yaml:"id"`
	Nickname    string `json:"nickname" yaml:"nickname"`
	AvatarURL   string `json:"avatar_url" yaml:"avatar_url"`
	Description string `json:"description" yaml:"description"`
	Doing       string `json:"doing" yaml:"doing"`
	Level       int    `json:"level" yaml:"level"`
	Sex         int    `json:"sex" yaml:"sex"`
	Birthday    int64  `json:"birthday" yaml:"birthday"`
}

// MessageCount is one counter of EndpointMessageCount.
type MessageCount struct {
	QueryType string `json:"query_type" yaml:"query_type"`
	Count     int    `json:"count" yaml:"count"`
}
