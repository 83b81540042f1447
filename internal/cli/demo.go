package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/replkit/repl"
)

const demoDescription = "A demo shell with a counter and a key/value store."

// ErrKeyNotFound is returned by get and del for keys that were never set.
var ErrKeyNotFound = errors.New("key not found")

// Workspace is the state shared by the demo commands.
type Workspace struct {
	Counter int
	Store   map[string]string
}

// NewDemoSession builds a session with the demo commands registered.
func NewDemoSession(opts ...repl.Option) (*repl.Session[Workspace], error) {
	s := repl.New(Workspace{Store: map[string]string{}}, opts...)
	cmds, err := demoCommands()
	if err != nil {
		return nil, err
	}
	for _, cmd := range cmds {
		if err := s.AddCommand(cmd); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func required(name string) repl.Parameter {
	p, _ := repl.NewParameter(name).SetRequired(true)
	return p
}

func defaulted(name, def string) repl.Parameter {
	p, _ := repl.NewParameter(name).SetDefault(def)
	return p
}

// withParams adds params to cmd in order.
func withParams(cmd repl.Command[Workspace], params ...repl.Parameter) (repl.Command[Workspace], error) {
	var err error
	for _, p := range params {
		if cmd, err = cmd.WithParameter(p); err != nil {
			return cmd, err
		}
	}
	return cmd, nil
}

func demoCommands() ([]repl.Command[Workspace], error) {
	defs := []struct {
		cmd    repl.Command[Workspace]
		params []repl.Parameter
	}{
		{repl.NewCommand("add", add).WithHelp("Add two integers"), []repl.Parameter{required("first"), required("second")}},
		{repl.NewCommand("hello", hello).WithHelp("Greet somebody"), []repl.Parameter{required("who"), defaulted("greeting", "Hello")}},
		{repl.NewCommand("count", count).WithHelp("Increment the counter and print it"), []repl.Parameter{defaulted("step", "1")}},
		{repl.NewCommand("set", set).WithHelp("Store a value under a key"), []repl.Parameter{required("key"), required("value")}},
		{repl.NewCommand("get", get).WithHelp("Print the value stored under a key"), []repl.Parameter{required("key")}},
		{repl.NewCommand("del", del).WithHelp("Remove a key"), []repl.Parameter{required("key")}},
		{repl.NewCommand("keys", keys).WithHelp("List stored keys"), nil},
		{repl.NewCommand("echo", echo).WithHelp("Print the text back"), []repl.Parameter{repl.NewParameter("text")}},
	}

	cmds := make([]repl.Command[Workspace], 0, len(defs))
	for _, def := range defs {
		cmd, err := withParams(def.cmd, def.params...)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", def.cmd.Name(), err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func add(args repl.Args, _ *Workspace) (string, error) {
	first, err := repl.Arg[int64](args, "first")
	if err != nil {
		return "", err
	}
	second, err := repl.Arg[int64](args, "second")
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(first+second, 10), nil
}

func hello(args repl.Args, _ *Workspace) (string, error) {
	return fmt.Sprintf("%s, %s!", args["greeting"], args["who"]), nil
}

func count(args repl.Args, ws *Workspace) (string, error) {
	step, err := repl.Arg[int](args, "step")
	if err != nil {
		return "", err
	}
	ws.Counter += step
	return strconv.Itoa(ws.Counter), nil
}

func set(args repl.Args, ws *Workspace) (string, error) {
	if ws.Store == nil {
		ws.Store = map[string]string{}
	}
	ws.Store[args["key"].String()] = args["value"].String()
	return "", nil
}

func get(args repl.Args, ws *Workspace) (string, error) {
	key := args["key"].String()
	v, ok := ws.Store[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return v, nil
}

func del(args repl.Args, ws *Workspace) (string, error) {
	key := args["key"].String()
	if _, ok := ws.Store[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	delete(ws.Store, key)
	return "", nil
}

func keys(_ repl.Args, ws *Workspace) (string, error) {
	names := make([]string, 0, len(ws.Store))
	for k := range ws.Store {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

func echo(args repl.Args, _ *Workspace) (string, error) {
	return args["text"].String(), nil
}
