package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lspsh",
	Short: "lspsh drives a language server through lspclient from a terminal",
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .lspsh.yaml in the working directory or $HOME)")
	rootCmd.AddCommand(connectCmd)
}

// initConfig wires viper to read .lspsh.yaml, whose `servers` key maps a
// language id to a server command line (e.g.
// `servers: {gopls: {command: gopls, args: [serve]}}`).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(".")
		if home != "" {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".lspsh")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LSPSH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "lspsh: reading config: %v\n", err)
		}
	}
}

// serverEntry is one language's command line as configured under
// `servers.<languageId>` in .lspsh.yaml.
type serverEntry struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

func lookupServer(languageID string) (serverEntry, bool) {
	var entry serverEntry
	key := "servers." + languageID
	if !viper.IsSet(key) {
		return entry, false
	}
	if err := viper.UnmarshalKey(key, &entry); err != nil {
		return entry, false
	}
	return entry, entry.Command != ""
}

func expandRoot(root string) (string, error) {
	if root == "" {
		return os.Getwd()
	}
	return filepath.Abs(root)
}
