package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"

	"github.com/spf13/cobra"
)

var contactForm models.ContactRequest

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the WebSecura team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ack, err := core.SubmitContact(context.Background(), app.client, contactForm, newSpinner(os.Stderr, "Sending..."))
		if err != nil {
			return userFacing(err)
		}
		fmt.Println(ack)
		return nil
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactForm.Name, "name", "", "your name")
	contactCmd.Flags().StringVar(&contactForm.Email, "email", "", "your email address")
	contactCmd.Flags().StringVar(&contactForm.Subject, "subject", "", "one of: "+strings.Join(render.ContactSubjects, ", "))
	contactCmd.Flags().StringVar(&contactForm.Message, "message", "", "the message (at least 10 characters)")
	rootCmd.AddCommand(contactCmd)
}
