package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flagset/flagfile"
)

var checkCmd = &cobra.Command{
	Use:   "check <document.toml>",
	Short: "Validate a flag collection document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := flagfile.Load(args[0])
		if err != nil {
			fmt.Printf("%s %s\n", color.RedString("FAIL"), args[0])
			return err
		}
		for _, c := range collections {
			fmt.Printf("%s %s: %d flags, %d aliases\n",
				color.GreenString("OK"), c.Name(), c.Len(), len(c.Aliases()))
		}
		return nil
	},
}
