// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServeStdio runs the runtime as an MCP server over stdio transport.
//
// This is the standard way to run the server as a subprocess of an MCP host
// such as Claude Desktop. The server communicates with the client via
// stdin/stdout using newline-delimited JSON, which is why all logging in
// this repository goes to stderr.
//
// ServeStdio blocks until the client terminates the connection or the
// context is cancelled.
func (r *Runtime) ServeStdio(ctx context.Context) error {
	return r.server.Run(ctx, &mcp.StdioTransport{})
}

// Serve runs the runtime with a custom MCP transport.
//
// This is useful for testing or embedding; pair it with
// [mcp.NewInMemoryTransports] when no process boundary is involved.
func (r *Runtime) Serve(ctx context.Context, transport mcp.Transport) error {
	return r.server.Run(ctx, transport)
}

// Connect creates a session for a single connection.
//
// Unlike [Runtime.ServeStdio] which runs a blocking loop, Connect returns
// immediately with a session that can be used to await client termination
// or manage the connection lifecycle.
func (r *Runtime) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return r.server.Connect(ctx, transport, nil)
}

// StreamableHTTPHandler returns an http.Handler for MCP's Streamable HTTP
// transport. The handler can be mounted on any HTTP server; [Runtime.ServeHTTP]
// does this with graceful shutdown and optional OAuth protection.
func (r *Runtime) StreamableHTTPHandler(opts *mcp.StreamableHTTPOptions) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return r.server
	}, opts)
}

// SSEHandler returns an http.Handler for the legacy SSE transport.
//
// This is provided for backwards compatibility with older MCP clients.
// New implementations should prefer [Runtime.StreamableHTTPHandler].
func (r *Runtime) SSEHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return r.server
	})
}

// InMemorySession creates an in-memory client-server session pair.
//
// This is useful for testing or for scenarios where you want MCP semantics
// (including JSON-RPC serialization) without network transport.
//
// The caller should close the client session when done, which also
// terminates the server session.
func (r *Runtime) InMemorySession(ctx context.Context) (*mcp.ServerSession, *mcp.ClientSession, error) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := r.server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, nil, err
	}

	client := mcp.NewClient(r.impl, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		_ = serverSession.Close() // Best-effort cleanup; already returning an error
		return nil, nil, err
	}

	return serverSession, clientSession, nil
}
