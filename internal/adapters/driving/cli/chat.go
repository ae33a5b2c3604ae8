package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docent-ai/docent/internal/adapters/driving/tui"
	"github.com/docent-ai/docent/internal/core/ports/driving"
)

// chatService can be preset by tests; runChat wires it from
// configuration when unset.
var chatService driving.ChatService

var (
	chatQuery   string
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the document agent",
	Long: `Chat with the Docent agent about your indexed documents.

Without flags this opens the interactive terminal UI. Use --query for
a single non-interactive turn, optionally pinning the conversation
with --session to continue a previous exchange.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatQuery, "query", "q", "", "ask a single question and exit")
	chatCmd.Flags().StringVar(&chatSession, "session", "", "session id for --query (default: a fresh session)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	service := chatService
	if service == nil {
		app, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		service = app.agent
	}

	if chatQuery != "" {
		sessionID := chatSession
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		answer, err := service.Chat(cmd.Context(), sessionID, chatQuery)
		if err != nil {
			return err
		}
		cmd.Println(answer)
		return nil
	}

	return tui.Run(cmd.Context(), tui.NewPorts(service))
}
