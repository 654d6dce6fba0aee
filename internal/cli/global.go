package cli

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	ServerUrl string
	Timeout   time.Duration
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
		Timeout:   30 * time.Second,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of a single request to the server")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.ServerUrl = strings.TrimRight(o.ServerUrl, "/")
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Client() *Client {
	return NewClient(o.ServerUrl, &http.Client{Timeout: o.Timeout})
}
