package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hdbank-ai/card-advisor/internal/bootstrap"
	"github.com/hdbank-ai/card-advisor/internal/config"
	"github.com/hdbank-ai/card-advisor/internal/observability"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the card advisor interactively",
	Long:  "Start an interactive consultation session. Type 'quit' to exit.",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logLevel := "error"
	if verbose {
		logLevel = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       logLevel,
		Format:      "console",
		Output:      os.Stderr,
		ServiceName: cfg.Observability.ServiceName,
	})

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	session := app.Sessions.Get("")

	bold := color.New(color.Bold)
	prompt := color.New(color.FgCyan, color.Bold)
	botColor := color.New(color.FgGreen)

	bold.Println("ChatBot đã sẵn sàng! (gõ 'quit' để thoát)")
	fmt.Println(strings.Repeat("-", 50))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\nBạn: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") {
			break
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " đang suy nghĩ..."
		s.Start()

		session.Lock()
		response := app.Engine.Answer(ctx, session.State, input)
		session.Unlock()

		s.Stop()

		fmt.Print("\nBot: ")
		botColor.Println(response)
	}

	return scanner.Err()
}
