package cmds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unclebandit/clientes-service/internal/model"
)

func GetClientesCommand(root *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clientes",
		Aliases: []string{"list"},
		Short:   "List all clientes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := root.Client().List(cmd.Context())
			if err != nil {
				return err
			}

			root.Print(res)
			return nil
		},
	}

	cmd.AddCommand(
		CreateClienteCommand(root),
		DeleteClienteCommand(root),
	)

	return cmd
}

func CreateClienteCommand(root *Root) *cobra.Command {
	var (
		nombre string
		campos []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a cliente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCliente(nombre, campos)
			if err != nil {
				return err
			}

			res, err := root.Client().Create(cmd.Context(), c)
			if err != nil {
				return err
			}

			root.Print(res)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&nombre, "nombre", "", "Name of the cliente")
	f.StringSliceVar(&campos, "campo", nil, "Additional field as key=value (repeatable)")

	return cmd
}

func DeleteClienteCommand(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a cliente by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			res, err := root.Client().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}

			root.Print(res)
			return nil
		},
	}
}

// buildCliente leaves nombre out when empty so the server performs the check
func buildCliente(nombre string, campos []string) (model.Customer, error) {
	c := model.Customer{}
	for _, kv := range campos {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --campo %q, expected key=value", kv)
		}
		c[k] = v
	}
	if nombre != "" {
		c[model.FieldNombre] = nombre
	}
	return c, nil
}
