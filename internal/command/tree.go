// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aumiao/aumiao/internal/i18n"
)

// ID indexes a node in the tree's arena. The root is always 0.
type ID int

// RootID is the ID of the program's root command.
const RootID ID = 0

const noParent ID = -1

// Registered is the runtime counterpart of a Definition.
type Registered struct {
	ID         ID
	Parent     ID
	Definition Definition
	// Command is the materialized cobra command that parses this node's
	// arguments.
	Command *cobra.Command

	tree       *Tree
	path       []string
	options    []option
	children   []ID
	childIndex map[string]ID
}

// Name returns the command's own name.
func (r *Registered) Name() string { return r.Definition.Name }

// Path returns the names from the first subcommand down to this node; the
// root's path is empty.
func (r *Registered) Path() []string {
	out := make([]string, len(r.path))
	copy(out, r.path)
	return out
}

// FullName returns the program name followed by the path, e.g. "aumiao user info".
func (r *Registered) FullName() string {
	return strings.Join(append([]string{r.tree.root().Definition.Name}, r.path...), " ")
}

// Children returns the direct children in declaration order.
func (r *Registered) Children() []*Registered {
	out := make([]*Registered, 0, len(r.children))
	for _, id := range r.children {
		out = append(out, r.tree.nodes[id])
	}
	return out
}

// Child returns the direct child called name.
func (r *Registered) Child(name string) (*Registered, bool) {
	id, ok := r.childIndex[name]
	if !ok {
		return nil, false
	}
	return r.tree.nodes[id], true
}

// Tree is the registry and router for the command-line surface. It is not
// safe for concurrent use; registration happens at startup and Dispatch runs
// one command at a time.
type Tree struct {
	nodes    []*Registered
	handlers map[string]ActionFunc
	before   []ActionFunc
	logger   *clog.Logger
	out      io.Writer
	errOut   io.Writer
	code     int
}

// TreeOption customizes a Tree.
type TreeOption func(*Tree)

// WithLogger sets the logger used at the failure boundary.
func WithLogger(l *clog.Logger) TreeOption {
	return func(t *Tree) { t.logger = l }
}

// WithOutput sets the writers handed to actions and used for usage errors.
func WithOutput(out, errOut io.Writer) TreeOption {
	return func(t *Tree) {
		t.out = out
		t.errOut = errOut
	}
}

// New creates a tree whose root is the program itself, bound to IndexAction.
func New(p Program, opts ...TreeOption) *Tree {
	t := &Tree{
		handlers: map[string]ActionFunc{},
		logger:   clog.Default(),
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}

	// Help and listings follow declaration order.
	cobra.EnableCommandSorting = false

	root := &cobra.Command{
		Use:           p.Name,
		Short:         p.Description,
		Version:       p.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(t.out)
	root.SetErr(t.errOut)

	node := &Registered{
		ID:         RootID,
		Parent:     noParent,
		Definition: Definition{Name: p.Name, Description: p.Description, Action: IndexAction},
		Command:    root,
		tree:       t,
		childIndex: map[string]ID{},
	}
	root.RunE = t.runE(node)
	t.nodes = append(t.nodes, node)
	return t
}

func (t *Tree) root() *Registered { return t.nodes[RootID] }

// Root returns the root command.
func (t *Tree) Root() *Registered { return t.root() }

// Get returns the node with the given ID.
func (t *Tree) Get(id ID) (*Registered, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[id], true
}

// Lookup resolves a path of names below the root.
func (t *Tree) Lookup(path ...string) (*Registered, bool) {
	node := t.root()
	for _, name := range path {
		next, ok := node.Child(name)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Len returns the number of registered commands, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Register adds def and its children under parent (the root when nil). The
// whole subtree is validated first, so a failed call changes nothing.
func (t *Tree) Register(def Definition, parent *Registered) (*Registered, error) {
	target, err := t.target(parent)
	if err != nil {
		return nil, err
	}
	if err := t.validateBatch([]Definition{def}, target); err != nil {
		return nil, err
	}
	return t.materialize(def, target), nil
}

// RegisterAll registers defs under parent in order. Either every definition
// is registered or none is.
func (t *Tree) RegisterAll(defs []Definition, parent *Registered) error {
	target, err := t.target(parent)
	if err != nil {
		return err
	}
	if err := t.validateBatch(defs, target); err != nil {
		return err
	}
	for _, def := range defs {
		t.materialize(def, target)
	}
	return nil
}

func (t *Tree) target(parent *Registered) (*Registered, error) {
	if parent == nil {
		return t.root(), nil
	}
	if parent.tree != t {
		return nil, fmt.Errorf("parent %q belongs to another tree", parent.Name())
	}
	return parent, nil
}

// validateBatch checks defs as siblings under parent, recursing into their
// children.
func (t *Tree) validateBatch(defs []Definition, parent *Registered) error {
	seen := map[string]bool{}
	for name := range parent.childIndex {
		seen[name] = true
	}
	return t.validateSiblings(defs, seen, parent.FullName())
}

func (t *Tree) validateSiblings(defs []Definition, seen map[string]bool, where string) error {
	for _, def := range defs {
		if !validName(def.Name) {
			return fmt.Errorf("%w: %q under %q", ErrInvalidName, def.Name, where)
		}
		if seen[def.Name] {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateName, def.Name, where)
		}
		seen[def.Name] = true

		if _, err := t.compileOptions(def); err != nil {
			return fmt.Errorf("%s %s: %w", where, def.Name, err)
		}
		if err := t.validateSiblings(def.Children, map[string]bool{}, where+" "+def.Name); err != nil {
			return err
		}
	}
	return nil
}

// compileOptions parses a node's options and checks them against each other
// and against the root's persistent flags.
func (t *Tree) compileOptions(def Definition) ([]option, error) {
	persistent := t.root().Command.PersistentFlags()
	longs := map[string]bool{"help": true}
	shorts := map[string]bool{"h": true}

	opts := make([]option, 0, len(def.Options))
	for _, od := range def.Options {
		o, err := compileOption(od)
		if err != nil {
			return nil, err
		}
		names := []string{o.spec.Long}
		if o.spec.Negated {
			names = append(names, "no-"+o.spec.Long)
		}
		for _, n := range names {
			if longs[n] {
				return nil, fmt.Errorf("%w: --%s declared twice", ErrInvalidFlags, n)
			}
			longs[n] = true
		}
		if o.spec.Short != "" {
			if shorts[o.spec.Short] || persistent.ShorthandLookup(o.spec.Short) != nil {
				return nil, fmt.Errorf("%w: -%s is already taken", ErrInvalidFlags, o.spec.Short)
			}
			shorts[o.spec.Short] = true
		}
		opts = append(opts, o)
	}
	return opts, nil
}

// materialize creates the node for def under parent. def must have been
// validated.
func (t *Tree) materialize(def Definition, parent *Registered) *Registered {
	opts, _ := t.compileOptions(def)

	cmd := &cobra.Command{
		Use:   def.Name,
		Short: def.Description,
		Args:  cobra.NoArgs,
	}
	for _, o := range opts {
		o.addTo(cmd.Flags())
	}

	node := &Registered{
		ID:         ID(len(t.nodes)),
		Parent:     parent.ID,
		Definition: def,
		Command:    cmd,
		tree:       t,
		path:       append(parent.Path(), def.Name),
		options:    opts,
		childIndex: map[string]ID{},
	}
	cmd.RunE = t.runE(node)

	t.nodes = append(t.nodes, node)
	parent.children = append(parent.children, node.ID)
	parent.childIndex[def.Name] = node.ID
	parent.Command.AddCommand(cmd)

	for _, child := range def.Children {
		t.materialize(child, node)
	}
	return node
}

// ActionFunc is the body of a command.
type ActionFunc func(inv *Invocation) error

// Handle binds fn to an action key. Binding a key twice replaces the
// previous handler.
func (t *Tree) Handle(action string, fn ActionFunc) {
	t.handlers[action] = fn
}

// Before registers a hook run ahead of every action, inside the same failure
// boundary. Hooks run in registration order and the first error stops the
// invocation.
func (t *Tree) Before(fn ActionFunc) {
	t.before = append(t.before, fn)
}

// Dispatch parses argv (without the program name), runs the resolved
// command's action and returns the exit status. It never panics and never
// returns an error: every failure is reported here.
//
// The first command argument may use the dotted form "user.info" for
// "user info", also after global flags.
func (t *Tree) Dispatch(ctx context.Context, argv []string) int {
	t.code = ExitOK
	root := t.root().Command
	defer t.resetFlags(root)

	root.SetArgs(expandPath(argv, root.PersistentFlags()))
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintf(t.errOut, "%s: %v\n", root.Name(), err)
		path := root.CommandPath()
		if cmd != nil {
			path = cmd.CommandPath()
		}
		fmt.Fprintln(t.errOut, i18n.T("app.usage_hint", path))
		return ExitUsage
	}
	return t.code
}

// expandPath splits the first positional argument on dots. Flags in front
// of it are skipped, together with the value of any flag in global that
// takes one.
func expandPath(argv []string, global *pflag.FlagSet) []string {
	i := 0
	for i < len(argv) {
		arg := argv[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") || arg == "-" {
			break
		}
		i++
		if strings.Contains(arg, "=") {
			continue
		}
		if takesValue(arg, global) {
			i++
		}
	}
	if i >= len(argv) || !strings.Contains(argv[i], ".") {
		return append([]string{}, argv...)
	}

	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:i]...)
	for _, part := range strings.Split(argv[i], ".") {
		if part != "" {
			out = append(out, part)
		}
	}
	return append(out, argv[i+1:]...)
}

// takesValue reports whether the flag token arg consumes the next argument.
func takesValue(arg string, global *pflag.FlagSet) bool {
	if global == nil {
		return false
	}
	var f *pflag.Flag
	if strings.HasPrefix(arg, "--") {
		f = global.Lookup(arg[2:])
	} else if len(arg) == 2 {
		f = global.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == "" && f.Value.Type() != "bool"
}

// runE adapts a node to cobra. Parsing errors surface from ExecuteC before
// this runs; everything after parsing is contained by invoke.
func (t *Tree) runE(node *Registered) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if node.Definition.Action == "" && len(node.children) > 0 {
			return cmd.Help()
		}
		t.code = t.invoke(cmd.Context(), node, args)
		return nil
	}
}

// invoke runs the before hooks and the node's action, turning errors and
// panics into ExitError.
func (t *Tree) invoke(ctx context.Context, node *Registered, args []string) (code int) {
	name := node.FullName()
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error(i18n.T("app.crashed", name), "panic", r, "stack", string(debug.Stack()))
			code = ExitError
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	inv := &Invocation{
		ctx:     ctx,
		node:    node,
		Args:    args,
		Out:     t.out,
		Err:     t.errOut,
		Command: node.Command,
	}
	if err := resolveNegations(node.Command.Flags(), node.options); err != nil {
		t.logger.Error(i18n.T("app.crashed", name), "err", err)
		return ExitError
	}

	err := t.run(inv)
	if err != nil {
		t.logger.Error(i18n.T("app.crashed", name), "err", err)
		return ExitError
	}
	return ExitOK
}

func (t *Tree) run(inv *Invocation) error {
	key := inv.node.Definition.Action
	fn, ok := t.handlers[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoAction, key)
	}
	for _, hook := range t.before {
		if err := hook(inv); err != nil {
			return err
		}
	}
	return fn(inv)
}

// resetFlags restores every flag to its default so the tree can dispatch
// again.
func (t *Tree) resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		t.resetFlags(c)
	}
}

// Listing writes the direct children of node (the root when nil) as an
// aligned name/description table.
func (t *Tree) Listing(w io.Writer, node *Registered) error {
	if node == nil {
		node = t.root()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var walk func(n *Registered, depth int)
	walk = func(n *Registered, depth int) {
		for _, c := range n.Children() {
			fmt.Fprintf(tw, "  %s%s\t%s\n", strings.Repeat("  ", depth), c.Name(), c.Definition.Description)
			walk(c, depth+1)
		}
	}
	walk(node, 0)
	return tw.Flush()
}
