package dondominio

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Handler runs one operation with loosely typed arguments.
type Handler func(ctx context.Context, args Params) (*Response, error)

// module is the dispatch table shared by every resource wrapper.
type module struct {
	c       *Client
	name    string
	ops     map[string]Handler
	aliases map[string]string
}

func newModule(c *Client, name string) module {
	return module{c: c, name: name, ops: map[string]Handler{}, aliases: map[string]string{}}
}

func (m *module) handle(op string, h Handler) { m.ops[op] = h }

// Proxy runs the operation op with args. Unknown operations are programming
// errors and panic.
func (m *module) Proxy(ctx context.Context, op string, args Params) (*Response, error) {
	h, ok := m.lookup(op)
	if !ok {
		panic(fmt.Sprintf("dondominio: method %s not found in module %s", op, m.name))
	}
	return h(ctx, args)
}

// Has reports whether op (or an alias of it) is an operation of the module.
func (m *module) Has(op string) bool {
	_, ok := m.lookup(op)
	return ok
}

// Operations returns the operation names in sorted order, aliases excluded.
func (m *module) Operations() []string {
	return slices.Sorted(maps.Keys(m.ops))
}

func (m *module) lookup(op string) (Handler, bool) {
	if target, ok := m.aliases[op]; ok {
		op = target
	}
	h, ok := m.ops[op]
	return h, ok
}

// The helpers below pull typed positional arguments out of a Params map for
// the registry handlers.

func argString(args Params, key string) string { return args.String(key) }

func argInt(args Params, key string) int64 {
	switch v := args[key].(type) {
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case float64:
		return int64(v)
	}
	n, _ := asInt64(args[key])
	return n
}

func argStrings(args Params, key string) []string {
	switch x := args[key].(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, v := range x {
			out = append(out, scalarString(v))
		}
		return out
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	}
	return nil
}
