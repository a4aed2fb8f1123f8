package game

import (
	"github.com/spf13/cobra"
)

// GameCmd is the parent of every command working on the local library.
var GameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage the local game library",
	Long:  `Add, list, edit and delete the games stored on this machine.`,
}
