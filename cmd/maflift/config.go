package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage maflift configuration",
		Long:  "Show, get, or set configuration values. Config is stored in config.yaml under the base directory.",
		Example: `  maflift config                                # show all config
  maflift config set reference.build GRCh38     # set the target build
  maflift config get validation.max_ref_mismatch_rate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))

	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigGet(args[0])
		},
	}
}

// configViper reads the resolved config file into a fresh viper instance.
func (a *app) configViper() (*viper.Viper, string, error) {
	path := a.configPath()
	if path == "" {
		path = filepath.Join(a.baseDir, "config.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	// A missing file is fine: show prints a hint, set creates it.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, path, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, path, nil
}

func (a *app) runConfigShow() error {
	v, path, err := a.configViper()
	if err != nil {
		return err
	}

	settings := v.AllSettings()
	if len(settings) == 0 {
		fmt.Printf("# No configuration set. Config file: %s\n", path)
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func (a *app) runConfigSet(key, value string) error {
	v, path, err := a.configViper()
	if err != nil {
		return err
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		v.Set(key, true)
	case "false", "no", "off":
		v.Set(key, false)
	default:
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, path)
	return nil
}

func (a *app) runConfigGet(key string) error {
	v, _, err := a.configViper()
	if err != nil {
		return err
	}

	val := v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
