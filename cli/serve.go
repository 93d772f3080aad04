package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NovantaCreativeTeam/pracsi-script/orchestrator"
	"github.com/NovantaCreativeTeam/pracsi-script/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload server",
		Args:  cobra.NoArgs,
		Run:   runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")

	conf, log, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if addr != "" {
		conf.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(conf, orchestrator.NewPipeline(conf, log), log)
	if err := srv.ListenAndServe(ctx); err != nil {
		exitErr("serve", err)
	}
	log.Info("server stopped")
}
