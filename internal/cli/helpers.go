package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat  = "json"
	yamlFormat  = "yaml"
	tableFormat = "table"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat, tableFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml. It reports false for any other format so the caller
// can fall back to a table.
func printStructured(w io.Writer, v any, output string) (bool, error) {
	var (
		marshalled []byte
		err        error
	)
	switch output {
	case jsonFormat:
		marshalled, err = json.MarshalIndent(v, "", "  ")
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("marshalling resource: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", strings.TrimRight(string(marshalled), "\n"))
	return true, err
}

func formatHours(h *float64, unlimited bool) string {
	if unlimited || h == nil || math.IsInf(*h, 1) {
		return "unlimited"
	}
	return fmt.Sprintf("%.2f", *h)
}
