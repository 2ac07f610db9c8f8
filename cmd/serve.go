package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/server"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/util"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServeAddress, serveCmd.Flags().Lookup("address")))

	serveCmd.Flags().StringSlice("origin", nil, "Origins allowed to call the API")
	lo.Must0(viper.BindPFlag(key.ServeAllowedOrigins, serveCmd.Flags().Lookup("origin")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search and playback controls over a JSON API",
	Long: `Start an HTTP server for browser front-ends. Audio plays on this machine.

  GET  /api/search?q=<query>   search and replace the current results
  POST /api/play/<id>          play one of the current results
  POST /api/toggle             pause or resume
  POST /api/stop               stop playback
  GET  /api/state              now playing and the visible notification`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		latest := notify.NewLatest()
		session, err := app.New(app.Options{Notifier: latest})
		handleErr(err)
		defer util.Ignore(session.Close)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		address := viper.GetString(key.ServeAddress)
		srv := &http.Server{
			Addr:              address,
			Handler:           server.New(ctx, session, latest, viper.GetStringSlice(key.ServeAllowedOrigins)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warnf("shutdown: %s", err)
			}
		}()

		fmt.Printf(
			"%s listening on %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)("http://"+address),
		)
		log.WithField("address", address).Info("serving")

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			handleErr(err)
		}
	},
}
