package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/mdmeta/internal/pipeline"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

// Run prints every registered plugin with its description.
func (p *PluginsCmd) Run(g *Global, _ *CLI) error {
	orch := pipeline.New(pipeline.WithLogger(g.logger()))

	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	for _, pl := range orch.Registry().List() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", pl.Name, pl.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}
