package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/polusai/wipp-client/pkg/wipp"
	"github.com/polusai/wipp-client/pkg/wippclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required (use --api, WIPP_API, or run 'wipp login')")
	ErrNameRequired        = errors.New("name is required")
	ErrUsernameRequired    = errors.New("username is required")
	ErrAuthURLRequired     = errors.New("Keycloak URL is required (use --auth-url)")
)

// createClient builds a client from the CLI configuration: endpoint from
// --api / config, token from --token / config.
func createClient(ctx context.Context) (wipp.Client, error) {
	endpoint := viper.GetString("api")
	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	config := &wipp.Config{
		APIEndpoint: endpoint,
		AccessToken: viper.GetString("token"),
		UserAgent:   "wipp-cli",
	}

	client, err := wippclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// printYAML writes v to stdout as YAML.
func printYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	return encoder.Encode(v)
}

// formatTime renders an optional timestamp for table output.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.RFC3339)
}

// formatBool renders an optional flag for table output.
func formatBool(b *bool) string {
	if b == nil {
		return ""
	}

	if *b {
		return "yes"
	}

	return "no"
}

// formatInt renders an optional count for table output.
func formatInt(i *int) string {
	if i == nil {
		return ""
	}

	return fmt.Sprintf("%d", *i)
}
