// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import "github.com/aumiao/aumiao/internal/command"

// Action keys bound in Register.
const (
	actionLogin        = "login"
	actionLogout       = "logout"
	actionStatus       = "status"
	actionUserInfo     = "user.info"
	actionUserMessages = "user.messages"
	actionConfigShow   = "config.show"
	actionConfigInit   = "config.init"
	actionVersion      = "version"
)

// Catalog returns the static command tree.
func Catalog() []command.Definition {
	return []command.Definition{
		{
			Name:        "login",
			Description: "Log in to codemao.cn",
			Action:      actionLogin,
			Options: []command.OptionDefinition{
				{Flags: "--copy-token", Description: "copy the session token to the clipboard"},
			},
		},
		{
			Name:        "logout",
			Description: "Log out and drop the session token",
			Action:      actionLogout,
		},
		{
			Name:        "status",
			Description: "Check whether the session is still valid",
			Action:      actionStatus,
		},
		{
			Name:        "user",
			Description: "Account commands",
			Children: []command.Definition{
				{
					Name:        "info",
					Description: "Show account details",
					Action:      actionUserInfo,
					Options: []command.OptionDefinition{
						{Flags: "-o, --output <format>", Description: "output format: text, yaml or json", DefaultValue: "text"},
					},
				},
				{
					Name:        "messages",
					Description: "Show unread message counts",
					Action:      actionUserMessages,
				},
			},
		},
		{
			Name:        "config",
			Description: "Configuration commands",
			Children: []command.Definition{
				{
					Name:        "show",
					Description: "Print the effective configuration",
					Action:      actionConfigShow,
				},
				{
					Name:        "init",
					Description: "Write a default configuration file",
					Action:      actionConfigInit,
					Options: []command.OptionDefinition{
						{Flags: "-f, --force", Description: "overwrite an existing file"},
					},
				},
			},
		},
		{
			Name:        "version",
			Description: "Print version information",
			Action:      actionVersion,
		},
	}
}
