package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pdftools/internal/server"
	"pdftools/pkg/config"
)

type serveOpts struct {
	port           string
	allowedOrigins []string
}

func ServeAppCommand(global *globalOpts) *cobra.Command {
	opts := serveOpts{}

	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the document API over HTTP",
		Example: "pdftools serve --port 8000 --allowed-origins http://localhost:3000",
		RunE: func(cmd *cobra.Command, args []string) error {
			processConfig, err := global.processConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.StartServer(ctx, config.ServerConfig{
				Port:           opts.port,
				AllowedOrigins: opts.allowedOrigins,
				Process:        processConfig,
			})
		},
	}

	command.Flags().StringVar(&opts.port, "port", config.DefaultPort, "Port on which to start the server")
	command.Flags().StringSliceVar(&opts.allowedOrigins, "allowed-origins", config.DefaultAllowedOrigins, "Origins allowed to call the API from a browser. Can be comma separated or supplied several times")

	return command
}
