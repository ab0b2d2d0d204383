// Package serve handles the web dashboard command
package serve

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"finadvisor/cmd/root"
	"finadvisor/internal/assistant"
	"finadvisor/internal/web"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long: `Serve starts an HTTP server with an upload form. Uploaded statements
are analyzed in memory and the report is rendered as a web page.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	rules, err := root.LoadRules()
	if err != nil {
		return err
	}

	listenAddr := addr
	if listenAddr == "" {
		listenAddr = root.Cfg.Web.Addr
	}

	a := assistant.New(root.Cfg, rules, root.Log)
	server, err := web.NewServer(listenAddr, a, root.Cfg.Web.MaxUploadBytes, root.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		root.Log.WithField("addr", listenAddr).Info("Dashboard listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	root.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
