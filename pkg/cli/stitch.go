package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getstitchd/stitchd/pkg/config"
	"github.com/getstitchd/stitchd/pkg/stitch"
)

// stitchCmd introspects the configured endpoints once and prints the
// stitched type inventory. Every type is materialized, so the command also
// doubles as a configuration check.
var stitchCmd = &cobra.Command{
	Use:   "stitch",
	Short: "Introspect the configured endpoints and print the stitched types",
	Example: `  # Print the stitched type inventory
  stitchd stitch --config stitchd.yaml

  # Machine-readable output
  stitchd stitch --json`,
	RunE: runStitch,
}

func init() {
	rootCmd.AddCommand(stitchCmd)
}

// typeInventory is the JSON shape of one stitched type in --json output.
type typeInventory struct {
	Name     string           `json:"name"`
	Endpoint string           `json:"endpoint"`
	Remote   string           `json:"remoteName"`
	Fields   []fieldInventory `json:"fields"`
}

type fieldInventory struct {
	Name string `json:"name"`
	Type string `json:"type"`
	List bool   `json:"list,omitempty"`
}

func runStitch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)

	stitcher, endpoints, err := buildStitcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	types, err := stitcher.Stitch(ctx, endpoints...)
	if err != nil {
		return err
	}

	inventory := make([]typeInventory, 0, len(types))
	for _, t := range types {
		fields, err := t.Fields(ctx)
		if err != nil {
			return err
		}
		inv := typeInventory{
			Name:     t.Name(),
			Endpoint: t.Endpoint().URL,
			Remote:   t.RemoteName(),
			Fields:   make([]fieldInventory, 0, len(fields)),
		}
		for _, f := range fields {
			inv.Fields = append(inv.Fields, fieldInventory{
				Name: f.Name,
				Type: fieldTypeName(f),
				List: f.Type.IsList,
			})
		}
		inventory = append(inventory, inv)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(inventory)
	}

	for _, inv := range inventory {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d fields)\n", inv.Name, len(inv.Fields))
		for _, f := range inv.Fields {
			suffix := ""
			if f.List {
				suffix = " (list)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s%s\n", f.Name, f.Type, suffix)
		}
	}
	return nil
}

// fieldTypeName renders a field's type for display: the semantic kind for
// scalars, the remote type name for complex fields.
func fieldTypeName(f stitch.FieldDef) string {
	if f.Type.Kind == stitch.KindComplexObject {
		return f.Type.LeafTypeName
	}
	return f.Type.Kind.String()
}
