package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/polusai/wipp-client/internal/auth"
	"github.com/polusai/wipp-client/internal/constants"
	"github.com/polusai/wipp-client/pkg/wippclient"
)

// DefaultRealm is the Keycloak realm WIPP deployments use.
const DefaultRealm = "WIPP"

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		authURL     string
		realm       string
		username    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a WIPP deployment",
		Long: `Authenticate against the Keycloak instance of a WIPP deployment and
store the API endpoint and bearer token in the CLI config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("WIPP API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			if authURL == "" {
				return ErrAuthURLRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				fmt.Print("Password: ")
				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(bytePassword)
				fmt.Println()
			}

			ctx := context.Background()

			tokenManager := auth.NewKeycloakTokenManager(&auth.KeycloakConfig{
				TokenURL: wippclient.KeycloakTokenURL(authURL, realm),
				Username: username,
				Password: password,
			})

			token, err := tokenManager.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			// Verify the credentials actually reach a WIPP API.
			client, err := wippclient.NewWithToken(ctx, apiEndpoint, token)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			if err := client.Ping(ctx); err != nil {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			if err := saveConfig(map[string]string{"api": apiEndpoint, "token": token}); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s as %s\n", apiEndpoint, username)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api", "", "WIPP API endpoint URL")
	cmd.Flags().StringVar(&authURL, "auth-url", "", "Keycloak base URL")
	cmd.Flags().StringVar(&realm, "realm", DefaultRealm, "Keycloak realm")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if not given)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the current WIPP deployment",
		Long:  "Remove the stored bearer token from the CLI config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveConfig(map[string]string{"api": viper.GetString("api")}); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

// saveConfig writes the CLI config file. Tokens are credentials, so the file
// is created user-readable only.
func saveConfig(values map[string]string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}

		configDir := filepath.Join(home, ".wipp")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		path = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	for key, value := range values {
		viper.Set(key, value)
	}

	return nil
}
