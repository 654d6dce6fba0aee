package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	v1 "github.com/powerguard/autonomy-planner/internal/handlers/v1"
	"github.com/powerguard/autonomy-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

type CalculateOptions struct {
	GlobalOptions

	File   string
	Output string
	Model  string
	Remote bool

	out io.Writer
}

func DefaultCalculateOptions() *CalculateOptions {
	return &CalculateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
		out:           os.Stdout,
	}
}

func NewCmdCalculate() *cobra.Command {
	o := DefaultCalculateOptions()
	cmd := &cobra.Command{
		Use:   "calculate -f FILE",
		Short: "Estimate how long a plan of power sources and devices lasts.",
		Example: `  # run a plan locally and print tables
  powerguard calculate -f plan.yaml

  # ask a running server with the aggregate model
  powerguard calculate -f plan.json --remote --model aggregate -o json`,
		Args: cobra.NoArgs,
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
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *CalculateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.File, "file", "f", o.File, "Plan file, json or yaml.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVarP(&o.Model, "model", "m", o.Model, "Calculation model. Defaults to the plan model, then to topology.")
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Send the plan to the server instead of calculating locally.")
}

func (o *CalculateOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *CalculateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.File == "" {
		return fmt.Errorf("a plan file is required")
	}
	return validateOutput(o.Output)
}

func (o *CalculateOptions) Run(ctx context.Context, args []string) error {
	plan, err := readPlan(o.File)
	if err != nil {
		return err
	}
	if o.Model != "" {
		plan.Model = o.Model
	}

	var reply *v1.CalculationReply
	if o.Remote {
		reply, err = o.Client().Calculate(ctx, *plan)
	} else {
		reply, err = calculateLocally(ctx, *plan)
	}
	if err != nil {
		return fmt.Errorf("calculating plan: %w", err)
	}

	if ok, err := printStructured(o.out, reply, o.Output); ok {
		return err
	}
	return printCalculation(o.out, reply)
}

// readPlan decodes a plan file. Both json and yaml are accepted since yaml is a superset.
func readPlan(path string) (*v1.CalculationRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	plan := new(v1.CalculationRequest)
	if err := yaml.UnmarshalStrict(raw, plan); err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", path, err)
	}
	return plan, nil
}

func calculateLocally(ctx context.Context, plan v1.CalculationRequest) (*v1.CalculationReply, error) {
	in, err := v1.InputFromRequest(plan)
	if err != nil {
		return nil, err
	}
	in.ApplyDefaults()

	calc, err := service.NewCalculationService("").Calculate(ctx, in, plan.Model)
	if err != nil {
		return nil, err
	}
	reply := v1.CalculationToApi(calc)
	return &reply, nil
}

func printCalculation(out io.Writer, reply *v1.CalculationReply) error {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)

	fmt.Fprintf(w, "MODEL:\t%s\n", reply.Model)
	fmt.Fprintf(w, "AUTONOMY:\t%s\n", reply.Summary.Text)
	fmt.Fprintf(w, "TOTAL HOURS:\t%.2f\n\n", reply.TotalRuntimeHours)

	fmt.Fprintln(w, "SOURCE\tLABEL\tRUNTIME (H)")
	for _, s := range reply.Sources {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.SourceID, s.Label, formatHours(s.RuntimeHours, s.Unlimited))
	}

	if len(reply.ChargeCounts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "DEVICE\tCHARGES")
		ids := make([]string, 0, len(reply.ChargeCounts))
		for id := range reply.ChargeCounts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "%s\t%.1f\n", id, reply.ChargeCounts[id])
		}
	}

	if len(reply.Connections) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SOURCE\tDEVICE\tSTATUS\tRUNTIME (H)\tNEEDED (H)")
		for _, c := range reply.Connections {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n", c.SourceID, c.DeviceID, c.Status, formatHours(c.RuntimeHours, c.Unlimited), c.NeededHours)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printList(out, "WARNINGS", reply.Warnings)
	printList(out, "RECOMMENDATIONS", reply.Recommendations)
	return nil
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
