// issue_token emite un token JWT para planificadores y consultores con el JWT_SECRET configurado.
//
// Uso: go run ./cmd/issue_token --user ana --role planner [--minutes 480]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Planificador-api/pkg/config"
	"github.com/jhoicas/Planificador-api/pkg/jwt"
)

func main() {
	var (
		user    string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:          "issue_token",
		Short:        "Emite un token Bearer para la API de planificación",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != jwt.RolePlanner && role != jwt.RoleViewer {
				return fmt.Errorf("rol %q inválido: use %s o %s", role, jwt.RolePlanner, jwt.RoleViewer)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, user, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "identificador del usuario")
	cmd.Flags().StringVar(&role, "role", jwt.RoleViewer, "rol: planner o viewer")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("user")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
