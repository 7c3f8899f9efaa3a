package cli

import (
	"github.com/gyrostable/clpkit/internal/cli/render"
	"github.com/spf13/cobra"
)

// renderJSON writes result to the command output as indented JSON
func renderJSON[T any](cmd *cobra.Command, result T) error {
	return render.NewJSONRenderer[T](cmd.OutOrStdout()).Render(result)
}
