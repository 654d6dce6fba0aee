package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/powerguard/autonomy-planner/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type VersionOptions struct {
	Output string

	out io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
		out:    os.Stdout,
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print PowerGuard version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			o.out = cmd.OutOrStdout()
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()
	if ok, err := printStructured(o.out, versionInfo, o.Output); ok {
		return err
	}
	_, err := fmt.Fprintf(o.out, "PowerGuard Version: %s\n", versionInfo.String())
	return err
}
