package main

import (
	"fmt"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/contact"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/spf13/cobra"
)

// NewContactCmd creates the contact command with explicit dependencies.
func NewContactCmd(client contact.Submitter) *cobra.Command {
	if client == nil {
		panic("NewContactCmd: client dependency cannot be nil")
	}

	var msg domain.ContactMessage

	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Long: fmt.Sprintf(`Send a message through the contact form.

USAGE:
    folio contact --name <name> --email <email> --subject <subject> --message <text>

The name needs at least %d characters, the subject %d and the message
between %d and %d.`, contact.MinNameLength, contact.MinSubjectLength, contact.MinMessageLength, contact.MaxMessageLength),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := contact.Submit(cmd.Context(), client, msg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), contact.SuccessMessage)
			return nil
		},
	}

	f := contactCmd.Flags()
	f.StringVar(&msg.Name, "name", "", "Your name")
	f.StringVar(&msg.Email, "email", "", "Your email address")
	f.StringVar(&msg.Subject, "subject", "", "Subject")
	f.StringVar(&msg.Message, "message", "", "Message body")

	return contactCmd
}

var contactCmd = NewContactCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(contactCmd)
}
