package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graph-gophers/gamereviews/internal/resolver"
	"github.com/graph-gophers/gamereviews/internal/store/memory"
)

func newSchemaCmd() *cobra.Command {
	var introspect bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !introspect {
				_, err := fmt.Fprint(cmd.OutOrStdout(), resolver.Schema)
				return err
			}
			schema, err := resolver.NewSchema(memory.New(), nil)
			if err != nil {
				return err
			}
			b, err := schema.ToJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().BoolVar(&introspect, "json", false, "print the introspection result as JSON")
	return cmd
}
