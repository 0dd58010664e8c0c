package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/foodpulse/foodpulse/internal/chatbot"
	"github.com/foodpulse/foodpulse/internal/usecase"
)

// NewChatCmd talks to the chatbot from the terminal.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the Food Pulse assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logCloser, err := setup()
			if err != nil {
				return err
			}
			defer logCloser.Close()

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runChat(cmd.Context(), a.chat, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChat reads one message per line until a farewell or end of input.
func runChat(ctx context.Context, uc usecase.ChatUseCase, in io.Reader, out io.Writer) error {
	sessionID := "cli:" + uuid.NewString()
	fmt.Fprintln(out, chatbot.GreetingReply)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		reply, err := uc.ProcessMessage(ctx, sessionID, scanner.Text())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Assistant: %s\n", reply.Text)
		if reply.State == chatbot.StateFarewell {
			return nil
		}
	}
}
