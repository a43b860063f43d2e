package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/callpoint"
	"github.com/viant/callpoint/model/types"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configURL string
	root := &cobra.Command{
		Use:          "callpoint",
		Short:        "Hosts action callbacks bound to call points",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configURL, "config", "c", "", "config URL (file://, mem://, gs://, s3://)")

	var path string
	invoke := &cobra.Command{
		Use:   "invoke <callPoint> [action]",
		Short: "Invoke an action and print its output as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "selftest"
			if len(args) > 1 {
				action = args[1]
			}
			return withService(cmd.Context(), configURL, func(ctx context.Context, srv *callpoint.Service) error {
				output, err := srv.Invoke(ctx, nil, args[0], action, types.ParseKeyPath(path), nil)
				if err != nil {
					return err
				}
				return printJSON(cmd, output)
			})
		},
	}
	invoke.Flags().StringVarP(&path, "path", "p", "", "key path of the action node")

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered call points",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), configURL, func(ctx context.Context, srv *callpoint.Service) error {
				for _, callPoint := range srv.CallPoints() {
					fmt.Fprintln(cmd.OutOrStdout(), callPoint)
				}
				return nil
			})
		},
	}
	root.AddCommand(invoke, list)
	return root
}

func withService(ctx context.Context, configURL string, fn func(ctx context.Context, srv *callpoint.Service) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := callpoint.DefaultConfig()
	if configURL != "" {
		var err error
		if cfg, err = callpoint.LoadConfig(ctx, nil, configURL); err != nil {
			return err
		}
	}
	srv, err := callpoint.New(ctx, callpoint.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer srv.Close(ctx)
	return fn(ctx, srv)
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
