// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

type valueKind int

const (
	kindSwitch valueKind = iota
	kindRequired
	kindOptional
)

// flagSpec is a parsed OptionDefinition.Flags string.
type flagSpec struct {
	Long    string
	Short   string
	Kind    valueKind
	Negated bool
}

// parseFlags parses "-l, --limit <n>" style declarations.
func parseFlags(s string) (flagSpec, error) {
	var spec flagSpec
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '|' })
	if len(fields) == 0 {
		return spec, fmt.Errorf("%w: empty declaration", ErrInvalidFlags)
	}

	placeholder := false
	for _, f := range fields {
		switch {
		case placeholder:
			return spec, fmt.Errorf("%w: %q has text after the value placeholder", ErrInvalidFlags, s)
		case strings.HasPrefix(f, "<") && strings.HasSuffix(f, ">") && len(f) > 2:
			spec.Kind = kindRequired
			placeholder = true
		case strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") && len(f) > 2:
			spec.Kind = kindOptional
			placeholder = true
		case strings.HasPrefix(f, "--"):
			if spec.Long != "" {
				return spec, fmt.Errorf("%w: %q declares two long names", ErrInvalidFlags, s)
			}
			spec.Long = f[2:]
		case strings.HasPrefix(f, "-"):
			if spec.Short != "" || len(f) != 2 {
				return spec, fmt.Errorf("%w: %q has a bad short name", ErrInvalidFlags, s)
			}
			spec.Short = f[1:]
		default:
			return spec, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFlags, f, s)
		}
	}

	if spec.Long == "" {
		return spec, fmt.Errorf("%w: %q has no long name", ErrInvalidFlags, s)
	}
	if !validName(spec.Long) {
		return spec, fmt.Errorf("%w: bad long name %q", ErrInvalidFlags, spec.Long)
	}
	if strings.HasPrefix(spec.Long, "no-") && spec.Kind == kindSwitch {
		spec.Long = strings.TrimPrefix(spec.Long, "no-")
		spec.Negated = true
	}
	return spec, nil
}

// option is an OptionDefinition ready to be added to a flag set.
type option struct {
	spec flagSpec
	def  OptionDefinition
}

func compileOption(def OptionDefinition) (option, error) {
	spec, err := parseFlags(def.Flags)
	if err != nil {
		return option{}, err
	}
	switch v := def.DefaultValue.(type) {
	case nil:
	case bool:
		if spec.Kind != kindSwitch {
			return option{}, fmt.Errorf("%w: --%s takes a value but defaults to a bool", ErrInvalidFlags, spec.Long)
		}
	case string, int:
		if spec.Kind == kindSwitch {
			return option{}, fmt.Errorf("%w: switch --%s cannot default to %T", ErrInvalidFlags, spec.Long, v)
		}
	default:
		return option{}, fmt.Errorf("%w: unsupported default %T for --%s", ErrInvalidFlags, v, spec.Long)
	}
	return option{spec: spec, def: def}, nil
}

// addTo defines the option on fs.
func (o option) addTo(fs *pflag.FlagSet) {
	s := o.spec
	switch s.Kind {
	case kindSwitch:
		def := s.Negated
		if b, ok := o.def.DefaultValue.(bool); ok {
			def = b
		}
		fs.BoolP(s.Long, s.Short, def, o.def.Description)
		if s.Negated {
			// --no-xxx switches xxx off.
			fs.Bool("no-"+s.Long, false, o.def.Description)
		}
	default:
		switch v := o.def.DefaultValue.(type) {
		case int:
			fs.IntP(s.Long, s.Short, v, o.def.Description)
		case string:
			fs.StringP(s.Long, s.Short, v, o.def.Description)
		default:
			fs.StringP(s.Long, s.Short, "", o.def.Description)
		}
		if s.Kind == kindOptional {
			fs.Lookup(s.Long).NoOptDefVal = "true"
		}
	}
}

// resolveNegations applies --no-xxx switches after parsing.
func resolveNegations(fs *pflag.FlagSet, opts []option) error {
	for _, o := range opts {
		if !o.spec.Negated {
			continue
		}
		neg := fs.Lookup("no-" + o.spec.Long)
		if neg == nil || !neg.Changed {
			continue
		}
		off, err := strconv.ParseBool(neg.Value.String())
		if err != nil {
			return err
		}
		if off {
			if err := fs.Set(o.spec.Long, "false"); err != nil {
				return err
			}
		}
	}
	return nil
}

func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '.' || r == '=' || r == ',' {
			return false
		}
	}
	return true
}
