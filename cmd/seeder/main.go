//cmd/seeder/main.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unclebandit/clientes-service/internal/config"
	"github.com/unclebandit/clientes-service/internal/model"
	"github.com/unclebandit/clientes-service/internal/repository"
	"github.com/unclebandit/clientes-service/internal/service"
)

func main() {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Create clientes from a JSON seed file through the configured repository",
		Run: func(cmd *cobra.Command, args []string) {
			seed(cmd.Context(), seedFile)
		},
	}
	cmd.Flags().StringVarP(&seedFile, "file", "f", "seed/clientes.json", "JSON array of clientes to create")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err.Error())
	}
}

func seed(ctx context.Context, seedFile string) {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logrus.Fatalf("failed to load configuration: %s", err)
	}
	cfg.ConfigureLogger()

	repo, closeRepo, err := repository.Open(cfg)
	if err != nil {
		logrus.Fatal(err.Error())
	}
	defer closeRepo()

	content, err := os.ReadFile(seedFile)
	if err != nil {
		logrus.Fatalf("failed to read %s: %v", seedFile, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var clientes []model.Customer
	if err := dec.Decode(&clientes); err != nil {
		logrus.Fatalf("failed to parse %s: %v", seedFile, err)
	}

	svc := &service.CustomerService{CustomerRepo: repo}

	created := 0
	for i, c := range clientes {
		if _, err := svc.CreateCustomer(ctx, c); err != nil {
			logrus.WithError(err).WithField("index", i).Warn("skipping cliente")
			continue
		}
		created++
	}

	logrus.Infof("Seeded %d of %d clientes from %s", created, len(clientes), seedFile)
}
