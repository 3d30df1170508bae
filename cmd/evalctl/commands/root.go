package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evaldesk/evaldesk/pkg/client"
)

var (
	apiClient *client.Client

	apiURL   string
	apiToken string
)

// Execute runs the evalctl root command. Connection settings come from
// flags, the EVALDESK_* environment, or an evalctl.yaml config file,
// in that order of precedence.
func Execute() error {
	root := &cobra.Command{
		Use:           "evalctl",
		Short:         "Submit, watch and export document evaluations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viper.SetConfigName("evalctl")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(".")
			viper.AddConfigPath("$HOME/.evaldesk")

			viper.SetEnvPrefix("EVALDESK")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			viper.SetDefault("api.url", "http://localhost:3000/api/v1")
			viper.SetDefault("poll.interval", "2s")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return fmt.Errorf("read config: %w", err)
				}
			}

			if apiURL == "" {
				apiURL = viper.GetString("api.url")
			}
			if apiToken == "" {
				apiToken = viper.GetString("api.token")
			}
			if apiToken == "" {
				return fmt.Errorf("API token required (--token, EVALDESK_API_TOKEN, or api.token in evalctl.yaml)")
			}

			apiClient = client.New(apiURL, apiToken)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "url", "", "API base URL (default http://localhost:3000/api/v1)")
	root.PersistentFlags().StringVar(&apiToken, "token", "", "bearer token for the API")

	root.AddCommand(submitCmd(), watchCmd(), listCmd(), exportCmd(), docTypesCmd())
	return root.Execute()
}

func pollInterval() time.Duration {
	d := viper.GetDuration("poll.interval")
	if d <= 0 {
		d = 2 * time.Second
	}
	return d
}
