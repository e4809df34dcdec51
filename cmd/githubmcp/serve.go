// Copyright 2025 John Wang. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/agentplexus/githubmcp/runtime"
)

func newServeCmd() *cobra.Command {
	var (
		addr        string
		path        string
		oauth       bool
		oauthID     string
		oauthSecret string
		ngrokTunnel bool
		ngrokDomain string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over Streamable HTTP",
		Long: "Serve exposes the MCP endpoint over Streamable HTTP instead of stdio.\n" +
			"Optionally protect it with OAuth client credentials or expose it\n" +
			"publicly through an ngrok tunnel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, log, err := newRuntime()
			if err != nil {
				return err
			}

			opts := &runtime.HTTPServerOptions{
				Addr: addr,
				Path: path,
				OnReady: func(result *runtime.HTTPServerResult) {
					entry := log.WithField("url", result.LocalURL)
					if result.PublicURL != "" {
						entry = entry.WithField("public_url", result.PublicURL)
					}
					entry.Info("MCP server ready")
					if result.OAuth != nil {
						log.WithFields(map[string]interface{}{
							"client_id":      result.OAuth.ClientID,
							"client_secret":  result.OAuth.ClientSecret,
							"token_endpoint": result.OAuth.TokenEndpoint,
						}).Info("OAuth credentials (generated for this run)")
					}
				},
			}
			if oauth || oauthID != "" || oauthSecret != "" {
				opts.OAuth = &runtime.OAuthOptions{
					ClientID:     oauthID,
					ClientSecret: oauthSecret,
				}
			}
			if ngrokTunnel || ngrokDomain != "" {
				opts.Ngrok = &runtime.NgrokOptions{Domain: ngrokDomain}
			}

			_, err = rt.ServeHTTP(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "local address to listen on")
	cmd.Flags().StringVar(&path, "path", "/mcp", "HTTP path for the MCP endpoint")
	cmd.Flags().BoolVar(&oauth, "oauth", false, "require OAuth bearer tokens (credentials are generated and logged)")
	cmd.Flags().StringVar(&oauthID, "oauth-client-id", "", "OAuth client ID (implies --oauth)")
	cmd.Flags().StringVar(&oauthSecret, "oauth-client-secret", "", "OAuth client secret (implies --oauth)")
	cmd.Flags().BoolVar(&ngrokTunnel, "ngrok", false, "expose the server through an ngrok tunnel (needs NGROK_AUTHTOKEN)")
	cmd.Flags().StringVar(&ngrokDomain, "ngrok-domain", "", "custom ngrok domain (implies --ngrok)")

	return cmd
}
