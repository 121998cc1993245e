package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/engine"
	"github.com/atdash-org/atdash/schema"
)

var (
	inspectFile  string
	inspectSheet string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Resolve and summarize a dataset file without serving it",
	Long: `inspect loads one dataset, resolves its headers onto the canonical
schema, and prints the mapping, row count, headline ATD statistics, and the
filterable option space as JSON. Useful for checking an export before
wiring it into the server configuration.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			table *dataset.Table
			err   error
		)
		if inspectSheet != "" {
			table, err = dataset.ReadXLSX(inspectFile, inspectSheet)
		} else {
			table, err = dataset.LoadFile(inspectFile)
		}
		if err != nil {
			return err
		}

		p, err := engine.Prepare(table)
		if err != nil {
			return err
		}

		report := inspectReport{
			Rows:    table.NumRows(),
			Columns: make(map[string]string, len(p.Mapping)),
			Options: p.FilterOptions(),
		}
		for key, col := range p.Mapping {
			report.Columns[string(key)] = col
		}
		if atdCol, ok := p.Mapping.Column(schema.KeyATD); ok {
			kpi := engine.KPI(p.Normalized.View(), atdCol)
			report.ATD = &kpi
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

type inspectReport struct {
	Rows    int                   `json:"rows"`
	Columns map[string]string     `json:"columns"`
	ATD     *engine.KPISummary    `json:"atd,omitempty"`
	Options *engine.FilterOptions `json:"options"`
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "dataset file to inspect (.csv or .xlsx)")
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "worksheet name for .xlsx files")
	if err := inspectCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("inspect: %v", err))
	}
}
