package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NovantaCreativeTeam/pracsi-script/orchestrator"
	"github.com/NovantaCreativeTeam/pracsi-script/table"
)

func init() {
	cmd := &cobra.Command{
		Use:   "convert <input.eaf>",
		Short: "Convert an annotation document into a transcript table",
		Args:  cobra.ExactArgs(1),
		Run:   runConvert,
	}

	cmd.Flags().StringP("output", "o", "", "Output file or directory (default: a new session dir under paths.outputs)")
	cmd.Flags().StringP("format", "f", "", "Table format: csv, json or sqlite (default: output.format)")
	cmd.Flags().Bool("summary", false, "Also write <name>.summary.json next to the table")
	cmd.Flags().String("remote", "", "Convert on a running pracsi server at this URL")

	RootCmd.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	summary, _ := cmd.Flags().GetBool("summary")
	remote, _ := cmd.Flags().GetString("remote")

	conf, log, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if format != "" {
		if _, err := table.ParseFormat(format); err != nil {
			exitErr("format", err)
		}
		conf.Output.Format = format
	}
	if cmd.Flags().Changed("summary") {
		conf.Output.Summary = summary
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := orchestrator.NewPipeline(conf, log)
	var res *orchestrator.Result
	if remote != "" {
		res, err = p.RunRemote(ctx, remote, args[0], out)
	} else {
		res, err = p.Run(ctx, args[0], out)
	}
	if err != nil {
		exitErr("convert", err)
	}

	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
