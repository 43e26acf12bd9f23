package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key",
	Short: "Generate an API key and its bcrypt hash",
	Long: `Hashes --key, or a freshly generated key, for use as API_KEY_HASH.
BCRYPT_COST and API_KEY_PEPPER are honored.`,
	RunE: runHashKey,
}

var hashKeyValue string

func init() {
	hashKeyCmd.Flags().StringVar(&hashKeyValue, "key", "", "Existing key to hash (generated when empty)")

	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(_ *cobra.Command, _ []string) error {
	keyCfg, err := config.NewAPIKeyConfig()
	if err != nil {
		return err
	}

	key := hashKeyValue
	if key == "" {
		key, err = config.GenerateAPIKey()
		if err != nil {
			return err
		}
	}

	hash, err := keyCfg.HashKey(key)
	if err != nil {
		return err
	}

	if hashKeyValue == "" {
		_, _ = fmt.Fprintf(os.Stdout, "API key:      %s\n", key)
	}
	_, _ = fmt.Fprintf(os.Stdout, "API_KEY_HASH=%s\n", hash)
	return nil
}
