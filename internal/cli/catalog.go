package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	v1 "github.com/powerguard/autonomy-planner/internal/handlers/v1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	SourceKind = "source"
	DeviceKind = "device"
)

var (
	pluralKinds = map[string]string{
		SourceKind: "sources",
		DeviceKind: "devices",
	}
)

type CatalogOptions struct {
	GlobalOptions

	Output   string
	Query    string
	Group    string
	Category string

	out io.Writer
}

func DefaultCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
		out:           os.Stdout,
	}
}

func NewCmdCatalog() *cobra.Command {
	o := DefaultCatalogOptions()
	cmd := &cobra.Command{
		Use:   "catalog (sources | devices)",
		Short: "List the reference catalog of a server.",
		Example: `  # every charging station
  powerguard catalog sources --group station

  # routers and other network gear as yaml
  powerguard catalog devices --category Мережа -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CatalogOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVarP(&o.Query, "query", "q", o.Query, "Case-insensitive search text.")
	fs.StringVar(&o.Group, "group", o.Group, "Source group: all, powerbank, station or battery_ups.")
	fs.StringVar(&o.Category, "category", o.Category, "Device category.")
}

func (o *CatalogOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *CatalogOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if _, err := parseKind(args[0]); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *CatalogOptions) Run(ctx context.Context, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	c := o.Client()
	var response any
	switch kind {
	case SourceKind:
		response, err = c.ListSources(ctx, o.Group, o.Query)
	case DeviceKind:
		response, err = c.ListDevices(ctx, o.Category, o.Query)
	}
	if err != nil {
		return fmt.Errorf("listing %s: %w", pluralKinds[kind], err)
	}

	if ok, err := printStructured(o.out, response, o.Output); ok {
		return err
	}

	w := tabwriter.NewWriter(o.out, 0, 8, 1, '\t', 0)
	switch r := response.(type) {
	case []v1.CatalogSource:
		printSourcesTable(w, r...)
	case []v1.CatalogDevice:
		printDevicesTable(w, r...)
	}
	return w.Flush()
}

func parseKind(arg string) (string, error) {
	kind := strings.ToLower(arg)
	for singular, plural := range pluralKinds {
		if kind == singular || kind == plural {
			return singular, nil
		}
	}
	return "", fmt.Errorf("invalid resource kind: %s", arg)
}

func printSourcesTable(w io.Writer, sources ...v1.CatalogSource) {
	fmt.Fprintln(w, "ID\tBRAND\tMODEL\tTYPE\tCAPACITY (WH)\tMAX OUTPUT (W)")
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.0f\n", s.ID, s.Brand, s.Model, s.Type, s.CapacityWh, s.MaxOutputW)
	}
}

func printDevicesTable(w io.Writer, devices ...v1.CatalogDevice) {
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTYPE\tPOWER (W)\tPEAK (W)\tPORT")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.0f\t%s\n", d.ID, d.Name, d.Category, d.Type, d.PowerW, d.RequiredW, d.PreferredPort)
	}
}
