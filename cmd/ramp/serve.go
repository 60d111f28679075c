package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/ramp/internal/cli"
	httpAdapter "github.com/aretw0/ramp/pkg/adapters/http"
	"github.com/aretw0/ramp/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the palette engine in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		name, pol, file, debug := optionsFromFlags(cmd)
		port, _ := cmd.Flags().GetString("port")

		logger := cli.NewLogger(debug)

		// Metrics hooks must be attached at construction time.
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

		pal, err := cli.CreatePalette(cli.Options{
			File:   file,
			Name:   name,
			Policy: pol,
			Debug:  debug,
			Hooks:  metrics.Hooks(),
		}, logger)
		if err != nil {
			fmt.Printf("Error initializing palette: %v\n", err)
			os.Exit(1)
		}
		defer pal.Close()

		observability.NewEvalCacheCollector(prometheus.DefaultRegisterer, pal.Engine())

		handler := httpAdapter.NewHandler(pal)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Ramp Server on %s\n", srv.Addr)
			fmt.Printf("Serving palette: %s\n", pal.Name())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Ramp Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
