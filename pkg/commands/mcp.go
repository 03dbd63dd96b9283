package commands

import (
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, s *session) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the prompt tree over the Model Context Protocol",
		Long: `Start an MCP server exposing the prompt tree and favorites as resources,
and the add, rename, edit, move, combine, reorder and remove verbs as tools.
Changes written by other promptdock processes are picked up while it runs.`,
		Example: `
promptdock mcp
promptdock mcp --transport stdio
promptdock mcp --http-port 0 --http-path /prompts
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := s.service()
			if err != nil {
				return err
			}
			cfg, err := s.config()
			if err != nil {
				return err
			}

			r := mcp.Runner{
				Service:          svc,
				Logger:           s.zap(),
				DefaultTitle:     cfg.DefaultFolderTitle(),
				Name:             "promptdock",
				Version:          version,
				HTTPEndpointPath: mo.EndpointPath(),
				HTTPServerCert:   strings.TrimSpace(mo.TLSCert),
				HTTPServerKey:    strings.TrimSpace(mo.TLSKey),
			}

			switch mcp.Transport(strings.ToLower(strings.TrimSpace(mo.Transport))) {
			case "", mcp.TransportHTTP:
				addr, err := mo.ListenAddr()
				if err != nil {
					return err
				}
				r.Transport = mcp.TransportHTTP
				r.HTTPListenAddr = addr
				r.OnHTTPListening = func(a net.Addr) {
					announce(cmd.OutOrStdout(), mo, a)
				}
			case mcp.TransportStdio:
				r.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.Transport)
			}

			return r.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

// announce prints the URL clients should connect to, swapping an unspecified
// bind address for one that can be dialed.
func announce(out io.Writer, mo *options.MCPOptions, a net.Addr) {
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		_, _ = fmt.Fprintf(out, "MCP server listening on %s%s\n", a, mo.EndpointPath())
		return
	}

	host := strings.TrimSpace(mo.Host)
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}

	scheme := "http"
	if mo.TLS() {
		scheme = "https"
	}
	u := fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, fmt.Sprint(tcp.Port)), mo.EndpointPath())
	_, _ = fmt.Fprintf(out, "MCP server listening on %s\n", u)
}
