// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package runtime provides a library-first MCP server runtime.
//
// Tools registered with the runtime use the exact same handler signatures as
// the MCP SDK, so behavior is identical whether a tool is invoked over a
// transport (stdio, Streamable HTTP, SSE) or directly in-process via
// [Runtime.CallTool].
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler is an alias for the MCP SDK's untyped tool handler.
type ToolHandler = mcp.ToolHandler

// Runtime wraps an mcp.Server and keeps its own tool registry so that tools
// can be invoked directly, without a client session.
type Runtime struct {
	impl   *mcp.Implementation
	server *mcp.Server

	mu    sync.RWMutex
	tools map[string]ToolHandler
}

// New creates a runtime for the given server implementation metadata.
// opts may be nil.
func New(impl *mcp.Implementation, opts *mcp.ServerOptions) *Runtime {
	return &Runtime{
		impl:   impl,
		server: mcp.NewServer(impl, opts),
		tools:  make(map[string]ToolHandler),
	}
}

// AddToolHandler registers a tool with an explicit input schema and an
// untyped handler. Most callers should prefer the typed [AddTool].
func (r *Runtime) AddToolHandler(t *mcp.Tool, h ToolHandler) {
	r.server.AddTool(t, h)
	r.mu.Lock()
	r.tools[t.Name] = h
	r.mu.Unlock()
}

// AddTool registers a typed tool on the runtime. The input schema is inferred
// from In by the MCP SDK. Handlers that produce unstructured (text) results
// should return a nil Out with Out instantiated as any.
func AddTool[In, Out any](r *Runtime, t *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) {
	mcp.AddTool(r.server, t, h)

	// Mirror the SDK's argument decoding for direct invocation.
	name := t.Name
	wrapped := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in In
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &in); err != nil {
				return nil, fmt.Errorf("decoding arguments for %q: %w", name, err)
			}
		}
		res, out, err := h(ctx, req, in)
		if err != nil {
			return nil, err
		}
		if res == nil {
			data, err := json.Marshal(out)
			if err != nil {
				return nil, fmt.Errorf("encoding result for %q: %w", name, err)
			}
			res = &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
			}
		}
		return res, nil
	}

	r.mu.Lock()
	r.tools[name] = wrapped
	r.mu.Unlock()
}

// CallTool invokes a registered tool directly, bypassing transport
// serialization. Arguments are decoded into the tool's input type exactly as
// they would be for a transport call.
func (r *Runtime) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	r.mu.RLock()
	h, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("tool %q not found", name)
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments for %q: %w", name, err)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: data},
	}
	return h(ctx, req)
}

// Tools returns the names of all registered tools in sorted order.
func (r *Runtime) Tools() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
