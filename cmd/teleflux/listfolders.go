package main

import (
	"fmt"
	"sort"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	telegramTransport "github.com/teleflux/teleflux/internal/transport/telegram"
)

// NewListFoldersCommand creates the list-folders command, a discovery
// aid for writing the folder mapping: it prints every Telegram folder
// the account has, with its broadcast channel count.
func NewListFoldersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-folders",
		Short: "List Telegram folders available for mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := setup(opts)
			if err != nil {
				return err
			}
			defer shutdown(injector)

			client, err := do.Invoke[*telegramTransport.Client](injector)
			if err != nil {
				return err
			}

			folders, err := client.ListFolders(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(folders, func(i, j int) bool { return folders[i].Title < folders[j].Title })

			if len(folders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No folders found")
				return nil
			}
			for _, folder := range folders {
				channels, err := client.ListChannels(cmd.Context(), folder)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d channels)\n", folder.Title, len(channels))
			}
			return nil
		},
	}
}
