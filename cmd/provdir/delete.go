package main

import (
	"fmt"

	"github.com/provdir/provdir"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return provdir.Errorf(provdir.EINVALID, "use --force to confirm deletion")
	}

	provider, err := deps.Providers.FindProviderByID(deps.Ctx, c.ID)
	if err != nil {
		if provdir.ErrorCode(err) == provdir.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: provider %q not found. Use 'provdir list' to see stored providers.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", provdir.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Providers.DeleteProvider(deps.Ctx, provider.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", provdir.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted provider %q\n", provider.Name)
	return nil
}
