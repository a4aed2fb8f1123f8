package review

import (
	"github.com/spf13/cobra"
)

// ReviewCmd is the parent of the review commands.
var ReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Rate and comment the games in the library",
}
