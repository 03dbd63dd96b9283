package options

import (
	"github.com/spf13/cobra"
)

// PlacementOptions locate a new or moved node inside a folder.
type PlacementOptions struct {
	ParentID string
	Index    int
}

func AddParentArgs(cmd *cobra.Command, o *PlacementOptions) {
	cmd.Flags().StringVarP(&o.ParentID, "parent", "p", "",
		"Specify the id of the parent folder. Defaults to the root.")
}

func AddIndexArgs(cmd *cobra.Command, o *PlacementOptions) {
	cmd.Flags().IntVar(&o.Index, "index", -1,
		"Position among the folder's items. Negative appends.")
}
