package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/irkit/internal/ir"
)

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	Attributes []string `json:"attributes"`
	Ops        []OpInfo `json:"ops"`
}

// OpInfo names an op kind and the interfaces it declares.
type OpInfo struct {
	ID         string   `json:"id"`
	Interfaces []string `json:"interfaces,omitempty"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the registered dialects and their kinds",
		Long: `List the dialects the configuration registers, with the types,
attributes and ops each one defines and the interfaces each op declares.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(rootOpts, cmd)
		},
	}

	return cmd
}

func runDialects(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	infos := describeDialects(s.ctx)
	if s.formatter.Format == "json" {
		return s.formatter.Success(infos)
	}

	w := s.formatter.Writer
	for _, d := range infos {
		fmt.Fprintln(w, d.Name)
		fmt.Fprintf(w, "  types: %s\n", strings.Join(d.Types, ", "))
		fmt.Fprintf(w, "  attributes: %s\n", strings.Join(d.Attributes, ", "))
		fmt.Fprintln(w, "  ops:")
		for _, op := range d.Ops {
			if len(op.Interfaces) == 0 {
				fmt.Fprintf(w, "    %s\n", op.ID)
				continue
			}
			fmt.Fprintf(w, "    %s [%s]\n", op.ID, strings.Join(op.Interfaces, ", "))
		}
	}
	return nil
}

func describeDialects(ctx *ir.Context) []DialectInfo {
	var infos []DialectInfo
	for _, name := range ctx.DialectNames() {
		d, _ := ctx.Dialect(name)
		info := DialectInfo{Name: string(name)}
		for _, id := range d.Types() {
			info.Types = append(info.Types, id.String())
		}
		for _, id := range d.Attrs() {
			info.Attributes = append(info.Attributes, id.String())
		}
		for _, id := range d.Ops() {
			info.Ops = append(info.Ops, OpInfo{ID: id.String(), Interfaces: ir.OpInterfaces(id)})
		}
		sort.Strings(info.Types)
		sort.Strings(info.Attributes)
		sort.Slice(info.Ops, func(i, j int) bool { return info.Ops[i].ID < info.Ops[j].ID })
		infos = append(infos, info)
	}
	return infos
}
