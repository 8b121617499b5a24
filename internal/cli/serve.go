package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/server"
)

// serveCommand creates the serve command, which exposes one document over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		width       float64
		maxSessions int
		sessionTTL  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a derivation over HTTP",
		Long: `Serve renders steps on request and hosts playback sessions.

Endpoints:
  GET  /healthz
  GET  /steps
  GET  /steps/{n}/layout
  GET  /steps/{n}.svg | .png
  GET  /steps/{n}/tree.svg
  POST /sessions
  GET  /sessions/{id}, /sessions/{id}/scene.svg
  POST /sessions/{id}/next | prev | restart | skip | goto/{n} | resize
  DELETE /sessions/{id}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions()
			opts.Width = width

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(ctx, args[0], opts)
			if err != nil {
				return err
			}
			srv, err := server.New(runner, doc, server.Options{
				Pipeline:    opts,
				Logger:      c.Logger,
				MaxSessions: maxSessions,
				SessionTTL:  sessionTTL,
			})
			if err != nil {
				return err
			}

			printSuccess("Serving %s (%d steps)", args[0], doc.Steps())
			printKeyValue("Address", styleLink.Render("http://"+displayAddr(addr)))
			printNextStep("Try", "curl http://"+displayAddr(addr)+"/steps")
			printNewline()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "listen address")
	cmd.Flags().Float64Var(&width, "width", 0, "default viewport width (default from config)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", server.DefaultMaxSessions, "maximum live playback sessions")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", server.DefaultSessionTTL, "idle session lifetime")

	return cmd
}

// displayAddr turns a listen address into one a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
