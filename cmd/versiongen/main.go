package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/callpoint/internal/logger"
	"github.com/viant/callpoint/service/nsoversion/cigen"
)

func main() {
	if err := newCommand(afs.New(), os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand(fs afs.Service, out io.Writer) *cobra.Command {
	var versionsURL, destURL, job string
	cmd := &cobra.Command{
		Use:   "versiongen",
		Short: "Generate CI include files with one build job per NSO version",
		Long: `Generates build-all, build-all4, build-all5 (every version, every 4.x, every 5.x)
and build-tot, build-tot4, build-tot5 (tip-of-train: latest release of each
major.minor train) include files from versions.json.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.For(logger.New("INFO", logger.FormatConsole, nil), logger.ComponentVersion)
			srv := cigen.New(fs, cigen.WithJob(job), cigen.WithLogger(log))
			written, err := srv.WriteAll(cmd.Context(), versionsURL, destURL)
			if err != nil {
				return err
			}
			for _, URL := range written {
				fmt.Fprintln(out, URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&versionsURL, "versions", "v", "versions.json", "versions document URL")
	cmd.Flags().StringVarP(&destURL, "dest", "d", ".", "destination folder URL")
	cmd.Flags().StringVarP(&job, "job", "j", cigen.DefaultJob, "archetype job every generated job extends")
	cmd.SetOut(out)
	return cmd
}
