package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"convoy/pkg/convo"
	"convoy/pkg/llmwire"
	"convoy/pkg/loop"
	"convoy/pkg/toolreg"
	"convoy/pkg/tools"
)

// newChatCmd is modeled on connachermurphy-twooms/main.go's
// bufio.Scanner-based REPL, generalized to drive a real multi-provider
// conversation with tool calling instead of that program's task-manager
// command dispatcher.
func newChatCmd() *cobra.Command {
	var providerName string
	var maxCalls uint32

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			var profile ProviderProfile
			var name string
			if providerName != "" {
				p, ok := cfg.Providers[providerName]
				if !ok {
					return fmt.Errorf("no provider named %q in %s", providerName, configPath)
				}
				name, profile = providerName, p
			} else {
				name, profile, err = defaultProfile(cfg)
				if err != nil {
					return err
				}
			}

			budget := cfg.MaxModelCalls
			if maxCalls > 0 {
				budget = maxCalls
			}
			if budget == 0 {
				budget = 20
			}

			provider, err := profile.toProvider()
			if err != nil {
				return err
			}
			client, err := llmwire.New(llmwire.Config{Provider: provider, APIKey: profile.APIKey, Model: profile.Model})
			if err != nil {
				return err
			}

			registry := toolreg.NewRegistry()
			tools.RegisterClock(registry, time.Now)
			tools.RegisterEnvVar(registry)
			tools.RegisterNotes(registry, tools.NewNoteStore())
			if wd, err := os.Getwd(); err == nil {
				tools.RegisterFilesystemRead(registry, wd)
			}
			client.Tools = registry.Tools()

			slog.Info("chat session starting", "provider", name, "model", profile.Model, "max_model_calls", budget)
			return runREPL(cmd.Context(), client, registry, budget)
		},
	}
	cmd.Flags().StringVar(&providerName, "provider", "", "provider profile name from providers.yaml (default: the profile marked default)")
	cmd.Flags().Uint32Var(&maxCalls, "max-model-calls", 0, "override the call budget for this session")
	return cmd
}

func runREPL(ctx context.Context, client *llmwire.Client, registry *toolreg.Registry, budget uint32) error {
	transport := llmwire.NewHTTPTransport()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("convoy chat — type a message, or /quit to exit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		convo.AddUser(client, line, convo.MessageOptions{})

		req, err := llmwire.BuildHTTPRequest(client, llmwire.DefaultRequestOptions())
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		resp, err := transport.Do(ctx, req)
		if err != nil {
			return fmt.Errorf("transport: %w", err)
		}
		if err := convo.UpdateMessages(client, resp.Status, resp.Body); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		if _, err := loop.HandleToolCalls(ctx, transport, client, registry.Handlers(), loop.Options{MaxModelCalls: budget}); err != nil {
			return fmt.Errorf("tool-call loop: %w", err)
		}

		final := client.Messages[len(client.Messages)-1]
		fmt.Println(final.Content)
	}
}
