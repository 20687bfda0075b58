package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flagset"
	"github.com/blackwell-systems/flagset/flagfile"
)

var evalCmd = &cobra.Command{
	Use:   "eval <document.toml> <collection> <expression>",
	Short: "Parse a flag expression against a declared collection",
	Long: `eval parses an expression like "bold|italic" (or the verbose form
"TextStyle(bold|italic)") against a collection declared in the document and
prints the resulting value and its decomposition.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := flagfile.Load(args[0])
		if err != nil {
			return err
		}

		var col *flagset.Collection
		for _, c := range collections {
			if c.Name() == args[1] {
				col = c
				break
			}
		}
		if col == nil {
			return errors.Errorf("no collection %q in %s", args[1], args[0])
		}

		v, err := col.FromString(args[2])
		if err != nil {
			return err
		}

		fmt.Printf("%s  bits=0x%04x\n", color.New(color.Bold).Sprint(v), v.Bits())
		members, err := v.Members()
		if err != nil {
			return err
		}
		for _, m := range members {
			fmt.Printf("  %-24s 0x%04x\n", m.Name(), m.Bits())
		}
		return nil
	},
}
