// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package runtime

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.ngrok.com/ngrok"
	"golang.ngrok.com/ngrok/config"
)

// HTTPServerOptions configures HTTP-based serving.
type HTTPServerOptions struct {
	// Addr is the local address to listen on (e.g., ":8080").
	// Required when Ngrok is nil. When Ngrok is configured, this is optional
	// and defaults to a random available port.
	Addr string

	// Path is the HTTP path for the MCP endpoint. Defaults to "/mcp".
	Path string

	// ReadHeaderTimeout is the timeout for reading request headers.
	// Defaults to 10 seconds.
	ReadHeaderTimeout time.Duration

	// Ngrok configures optional ngrok tunneling. When set, the server
	// is exposed via ngrok and the PublicURL in the result will be populated.
	Ngrok *NgrokOptions

	// StreamableHTTPOptions are passed to the MCP StreamableHTTP handler.
	StreamableHTTPOptions *mcp.StreamableHTTPOptions

	// OAuth configures OAuth 2.0 client credentials authentication.
	// When set, the MCP endpoint requires a Bearer token and a token
	// endpoint is exposed at /oauth/token (or OAuth.TokenPath if set).
	OAuth *OAuthOptions

	// OnReady is called when the server is ready to accept connections,
	// before ServeHTTP blocks. This is useful for logging the server URL.
	OnReady func(result *HTTPServerResult)
}

// NgrokOptions configures ngrok tunneling.
type NgrokOptions struct {
	// Authtoken is the ngrok authentication token.
	// If empty, uses the NGROK_AUTHTOKEN environment variable.
	Authtoken string

	// Domain is an optional custom ngrok domain (e.g., "myapp.ngrok.io").
	// Requires a paid ngrok plan.
	Domain string
}

// HTTPServerResult contains information about the running HTTP server.
type HTTPServerResult struct {
	// LocalAddr is the local address the server is listening on (e.g., "localhost:8080").
	LocalAddr string

	// LocalURL is the full local URL including path (e.g., "http://localhost:8080/mcp").
	LocalURL string

	// PublicURL is the ngrok public URL including path, if ngrok is enabled.
	// Empty string if ngrok is not configured.
	PublicURL string

	// OAuth contains the OAuth credentials if OAuth is enabled.
	// Nil if OAuth is not configured.
	OAuth *OAuthCredentials
}

// ServeHTTP starts an HTTP server for the MCP runtime.
//
// When opts.Ngrok is configured, the server is exposed via ngrok tunnel
// and the returned result includes the public URL.
//
// ServeHTTP blocks until the context is cancelled, at which point it
// performs a graceful shutdown.
//
// Example:
//
//	result, err := rt.ServeHTTP(ctx, &runtime.HTTPServerOptions{
//	    Addr: ":8080",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("MCP server running at %s", result.LocalURL)
func (r *Runtime) ServeHTTP(ctx context.Context, opts *HTTPServerOptions) (*HTTPServerResult, error) {
	if opts == nil {
		opts = &HTTPServerOptions{}
	}

	path := opts.Path
	if path == "" {
		path = "/mcp"
	}

	readHeaderTimeout := opts.ReadHeaderTimeout
	if readHeaderTimeout == 0 {
		readHeaderTimeout = 10 * time.Second
	}

	tokenPath := "/oauth/token" //nolint:gosec // G101: this is a URL path, not credentials
	if opts.OAuth != nil && opts.OAuth.TokenPath != "" {
		tokenPath = opts.OAuth.TokenPath
	}

	// Create listener FIRST to determine the base URL
	var listener net.Listener
	var err error
	var baseURL string

	result := &HTTPServerResult{}

	if opts.Ngrok != nil {
		listener, err = createNgrokListener(ctx, opts.Ngrok)
		if err != nil {
			return nil, fmt.Errorf("creating ngrok listener: %w", err)
		}
		// ngrok listener address is just hostname, need to add https scheme
		baseURL = "https://" + listener.Addr().String()
		result.PublicURL = baseURL + path

		if opts.Addr != "" {
			result.LocalAddr = opts.Addr
			result.LocalURL = "http://" + opts.Addr + path
		}
	} else {
		if opts.Addr == "" {
			return nil, fmt.Errorf("addr is required when ngrok is not configured")
		}
		listener, err = net.Listen("tcp", opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("listening on %s: %w", opts.Addr, err)
		}
		result.LocalAddr = listener.Addr().String()
		result.LocalURL = "http://" + result.LocalAddr + path
		baseURL = "http://" + result.LocalAddr
	}

	mcpHandler := r.StreamableHTTPHandler(opts.StreamableHTTPOptions)
	mux := http.NewServeMux()

	var oauthSrv *oauthServer
	if opts.OAuth != nil {
		oauthSrv, err = newOAuthServer(opts.OAuth)
		if err != nil {
			_ = listener.Close()
			return nil, fmt.Errorf("creating oauth server: %w", err)
		}

		mux.Handle(tokenPath, oauthSrv.TokenHandler())

		// OAuth metadata discovery endpoints (RFC 8414 and RFC 9728)
		mux.Handle("/.well-known/oauth-authorization-server", AuthorizationServerMetadataHandler(tokenPath))
		mux.Handle("/.well-known/oauth-protected-resource", ProtectedResourceMetadataHandler(path))

		// Wrap MCP handler with auth middleware using ABSOLUTE URL
		resourceMetadataURL := baseURL + "/.well-known/oauth-protected-resource"
		mcpHandler = oauthSrv.BearerAuthMiddleware(resourceMetadataURL)(mcpHandler)

		clientID, clientSecret := oauthSrv.Credentials()
		result.OAuth = &OAuthCredentials{
			ClientID:      clientID,
			ClientSecret:  clientSecret,
			TokenEndpoint: baseURL + tokenPath,
		}
	}

	mux.Handle(path, mcpHandler)

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		if oauthSrv != nil {
			oauthSrv.Close()
		}
	}()

	// Call OnReady callback before blocking on Serve
	if opts.OnReady != nil {
		opts.OnReady(result)
	}

	err = server.Serve(listener)
	if err == http.ErrServerClosed {
		return result, nil
	}
	return result, err
}

// createNgrokListener creates an ngrok tunnel listener.
func createNgrokListener(ctx context.Context, opts *NgrokOptions) (net.Listener, error) {
	authtoken := opts.Authtoken
	if authtoken == "" {
		authtoken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authtoken == "" {
		return nil, fmt.Errorf("ngrok authtoken is required: set Authtoken or NGROK_AUTHTOKEN environment variable")
	}

	httpConfig := config.HTTPEndpoint()
	if opts.Domain != "" {
		httpConfig = config.HTTPEndpoint(config.WithDomain(opts.Domain))
	}

	return ngrok.Listen(ctx, httpConfig, ngrok.WithAuthtoken(authtoken))
}
