package main

import (
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/clientes-service/cmd/clientescli/cmds"
)

func main() {
	root := cmds.NewRoot("clientescli")

	root.AddCommand(
		cmds.GetClientesCommand(root),
	)

	if err := root.Execute(); err != nil {
		logrus.Fatal(err.Error())
	}
}
