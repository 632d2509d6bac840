package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a codegen.yaml with a starter schema and document",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := []struct{ path, content string }{
				{"codegen.yaml", defaultConfig},
				{"schema.graphqls", starterSchema},
				{"queries/weather.graphql", starterDocument},
			}
			created := 0
			for _, f := range files {
				if dir := filepath.Dir(f.path); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return wrapError(fmt.Sprintf("init: unable to create %s: %v", dir, err), err, "Check directory permissions and retry.", 1)
					}
				}
				if _, err := os.Stat(f.path); err == nil && !force {
					logVerbose(cmd, "skipping existing %s", f.path)
					continue
				}
				if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
					return wrapError(fmt.Sprintf("init: unable to write %s: %v", f.path, err), err, "Check file permissions and retry.", 1)
				}
				created++
				logVerbose(cmd, "wrote %s", f.path)
			}
			if created == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Workspace already initialized; use --force to overwrite.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized suspensegen workspace.")
			fmt.Fprintln(cmd.OutOrStdout(), "Run `suspensegen gen` to emit src/generated/hooks.tsx.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing scaffold files")
	return cmd
}

const defaultConfig = `# suspensegen configuration
schema: schema.graphqls
documents:
  - queries/*.graphql
output: src/generated/hooks.tsx
useExternalDocument: false
disableChecks: false
externalFragments: []
`

const starterSchema = `type Query {
  weather(city: String!, country: String!): Weather
}

type Weather {
  summary: String!
  temperature: Float!
}
`

const starterDocument = `query GetWeather($city: String!, $country: String!) {
  weather(city: $city, country: $country) {
    summary
    temperature
  }
}
`
