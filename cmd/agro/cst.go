package main

import (
	"fmt"

	"github.com/deppfellow/agro-backend/internal/lib/fiscal"
	"github.com/deppfellow/agro-backend/internal/lib/utils"
	"github.com/spf13/cobra"
)

var cstCmd = &cobra.Command{
	Use:   "cst [tabela [codigo]]",
	Short: "Print the CST tables, one table or one code as JSON",
	Example: `  agro cst
  agro cst cst_ibs_cbs
  agro cst cst_ibs_cbs 410`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			return utils.PrintJSON(out, fiscal.Names())
		}

		tabela, ok := fiscal.Tabela(args[0])
		if !ok {
			return fmt.Errorf("unknown table %q, expected one of %v", args[0], fiscal.Names())
		}
		if len(args) == 1 {
			return utils.PrintJSON(out, tabela)
		}

		code, ok := fiscal.Buscar(args[0], args[1])
		if !ok {
			return fmt.Errorf("code %q not found in %s", args[1], args[0])
		}
		return utils.PrintJSON(out, code)
	},
}
