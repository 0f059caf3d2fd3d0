package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noahfaas/relationship-y/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type cliConfig struct {
	server     string
	room       string
	passphrase string
	tokenFile  string
	interval   time.Duration
}

var cfg cliConfig

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".rely-device"
	}
	return filepath.Join(dir, "rely", "device")
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RELY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "rely",
		Short:         "Answer shared questions with your partner; answers stay encrypted until both of you have replied.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "server base URL (env: RELY_SERVER)")
	fs.StringVarP(&cfg.room, "room", "r", "", "room code (env: RELY_ROOM)")
	fs.StringVarP(&cfg.passphrase, "passphrase", "p", "", "shared passphrase, never sent to the server (env: RELY_PASSPHRASE)")
	fs.StringVar(&cfg.tokenFile, "token-file", defaultTokenFile(), "where the device token lives (env: RELY_TOKEN_FILE)")
	fs.DurationVar(&cfg.interval, "interval", 2*time.Second, "poll interval while waiting (env: RELY_INTERVAL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(
		newCreateCmd(),
		newCurrentCmd(),
		newAskCmd(),
		newAnswerCmd(),
		newWaitCmd(),
		newShowCmd(),
		newInboxCmd(),
		newHistoryCmd(),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func newClient() (*client.Client, error) {
	token, err := client.LoadOrCreateDeviceToken(cfg.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("device token: %w", err)
	}
	return client.New(cfg.server, token), nil
}

func requireRoom() (string, error) {
	if cfg.room == "" {
		return "", errors.New("room code required: pass --room or set RELY_ROOM")
	}
	return strings.ToUpper(strings.TrimSpace(cfg.room)), nil
}

func requirePassphrase() (string, error) {
	if cfg.passphrase == "" {
		return "", errors.New("passphrase required: pass --passphrase or set RELY_PASSPHRASE")
	}
	return cfg.passphrase, nil
}
