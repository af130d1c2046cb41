package commands

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/runner/mcp"
)

type mcpOptions struct {
	transport string
	host      string
	port      int
	path      string
	tlsCert   string
	tlsKey    string
}

func addMCP(topLevel *cobra.Command) {
	mo := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the trip to AI agents over the Model Context Protocol",
		Long: `Serve the current trip over the Model Context Protocol. Agents can read the
day plan and the selection, add or remove products, move and reorder entries,
repeat items, write day notes and undo or redo edits. Changes made from other
tripbook commands are picked up while the server runs.`,
		Example: `
# Streamable HTTP on 127.0.0.1:8080/mcp
tripbook mcp --trip lisbon

# Let the agent host spawn the server
tripbook mcp --transport stdio --trip lisbon

# Any free port, served over TLS
tripbook mcp --port 0 --tls-cert cert.pem --tls-key key.pem
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := mo.runner()
			if err != nil {
				return err
			}

			s, err := openTrip(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			runner.Planner = s.planner
			if runner.Transport == mcp.TransportHTTP {
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving trip %q at %s\n", s.planner.Trip(), mo.url(a))
				}
			}
			return runner.Do(ctx(cmd))
		},
	}

	cmd.Flags().StringVar(&mo.transport, "transport", string(mcp.TransportHTTP), "How agents connect: http or stdio.")
	cmd.Flags().StringVar(&mo.host, "host", "127.0.0.1", "Interface the HTTP server listens on.")
	cmd.Flags().IntVar(&mo.port, "port", 8080, "Port the HTTP server listens on, 0 picks a free one.")
	cmd.Flags().StringVar(&mo.path, "path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&mo.tlsCert, "tls-cert", "", "Certificate file, serves HTTPS together with --tls-key.")
	cmd.Flags().StringVar(&mo.tlsKey, "tls-key", "", "Private key file for --tls-cert.")

	topLevel.AddCommand(cmd)
}

// runner validates the flags and returns a Runner without a planner.
func (mo *mcpOptions) runner() (mcp.Runner, error) {
	r := mcp.Runner{
		Name:           "tripbook",
		Version:        Version,
		HTTPServerCert: strings.TrimSpace(mo.tlsCert),
		HTTPServerKey:  strings.TrimSpace(mo.tlsKey),
	}

	switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(mo.transport))); t {
	case "", mcp.TransportHTTP:
		if mo.port < 0 || mo.port > 65535 {
			return r, fmt.Errorf("invalid --port %d", mo.port)
		}
		if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
			return r, errors.New("--tls-cert and --tls-key go together")
		}
		r.Transport = mcp.TransportHTTP
		r.HTTPListenAddr = net.JoinHostPort(mo.listenHost(), strconv.Itoa(mo.port))
		r.HTTPEndpointPath = mo.endpoint()
	case mcp.TransportStdio:
		r.Transport = mcp.TransportStdio
	default:
		return r, fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.transport)
	}
	return r, nil
}

func (mo *mcpOptions) listenHost() string {
	if host := strings.TrimSpace(mo.host); host != "" {
		return host
	}
	return "127.0.0.1"
}

func (mo *mcpOptions) endpoint() string {
	path := strings.TrimSpace(mo.path)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// url is the address agents should connect to. A wildcard listen host is
// shown as the bound IP or loopback.
func (mo *mcpOptions) url(a net.Addr) string {
	scheme := "http"
	if mo.tlsCert != "" {
		scheme = "https"
	}
	host, port := mo.listenHost(), strconv.Itoa(mo.port)
	if tcp, ok := a.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
			if tcp.IP != nil && !tcp.IP.IsUnspecified() {
				host = tcp.IP.String()
			}
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), mo.endpoint())
}
