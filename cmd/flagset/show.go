package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/flagset/flagfile"
)

var showCmd = &cobra.Command{
	Use:   "show <document.toml>",
	Short: "Show the resolved members of every collection in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := flagfile.Load(args[0])
		if err != nil {
			return err
		}

		header := color.New(color.Bold)
		for i, c := range collections {
			if i > 0 {
				fmt.Println()
			}
			header.Println(c.Name())
			for _, m := range c.Members() {
				fmt.Printf("  %-24s 0x%04x", m.Name(), m.Bits())
				if m.Data() != nil {
					fmt.Printf("  data=%v", m.Data())
				}
				fmt.Println()
			}
			aliases := c.Aliases()
			for _, name := range c.Names() {
				if target, ok := aliases[name]; ok {
					fmt.Printf("  %-24s alias of %s\n", name, target)
				}
			}
			if name, ok := c.ZeroName(); ok {
				fmt.Printf("  %-24s 0x%04x (zero)\n", name, 0)
			}
			if name, ok := c.AllName(); ok {
				fmt.Printf("  %-24s 0x%04x (all)\n", name, c.All().Bits())
			}
		}
		return nil
	},
}
