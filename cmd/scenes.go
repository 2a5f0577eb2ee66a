package cmd

import (
	"fmt"

	"github.com/df07/photon/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scene presets.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description", "Shapes", "Preview"})

	presets := scene.Presets()
	for _, preset := range presets {
		desc := preset.Build(int64(ctx.Int("seed")))
		width, height := desc.DefaultSize()
		table.Append([]string{
			preset.Name,
			preset.Summary,
			fmt.Sprintf("%d", len(desc.Shapes)),
			fmt.Sprintf("%dx%d", width, height),
		})
	}
	table.SetFooter([]string{"", "", "Total", fmt.Sprintf("%d", len(presets))})

	table.Render()
	return nil
}
