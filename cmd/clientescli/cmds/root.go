package cmds

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/unclebandit/clientes-service/internal/client"
)

type Root struct {
	*cobra.Command

	ServerURL string
}

func NewRoot(name string) *Root {
	root := &Root{
		Command: &cobra.Command{
			Use:          name,
			SilenceUsage: true,
		},
	}

	defaultURL := os.Getenv("CLIENTES_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}

	root.PersistentFlags().StringVar(&root.ServerURL, "server", defaultURL, "Base URL of the clientes service")

	return root
}

func (r *Root) Client() *client.Client {
	return client.New(r.ServerURL)
}

// Print writes v as indented JSON to the command output.
func (r *Root) Print(v any) {
	enc := json.NewEncoder(r.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
