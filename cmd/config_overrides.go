package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"input-dir":   "batch.input_dir",
	"output-dir":  "batch.output_dir",
	"archive-dir": "batch.archive_dir",
	"archive":     "batch.archive_inputs",
	"concurrency": "batch.max_concurrency",
	"name-format": "batch.output_name_format",
	"xlsx":        "batch.summary_xlsx",
	"width":       "wrap.width",
}

// applyConfigFlagOverrides copies every explicitly set flag of cmd into v,
// so flags win over file and environment.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper) {
	for flagName, key := range flagKeys {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, flagName, key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	case "stringSlice":
		if val, err := cmd.Flags().GetStringSlice(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
