package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/hugohenrick/loja-colchoes/internal/adapter/repository"
	"github.com/hugohenrick/loja-colchoes/internal/config"
	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/hugohenrick/loja-colchoes/internal/infrastructure/database"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migration",
		Short:         "Gerencia o esquema do banco de dados da loja",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env é opcional
			_ = godotenv.Load()
		},
	}
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newDownCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newForceCmd())
	cmd.AddCommand(newSeedAdminCmd())
	return cmd
}

// withMigrate abre o golang-migrate com as migrações embutidas e o fecha ao final
func withMigrate(fn func(m *migrate.Migrate) error) error {
	m, err := database.NewMigrate(config.DatabaseFromEnv().MigrationURL())
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica todas as migrações pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrate(func(m *migrate.Migrate) error {
				if err := m.Up(); err != nil {
					if errors.Is(err, migrate.ErrNoChange) {
						fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma migração pendente")
						return nil
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrações executadas com sucesso!")
				return nil
			})
		},
	}
}

func newDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Reverte migrações (uma por padrão)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps deve ser positivo")
			}
			return withMigrate(func(m *migrate.Migrate) error {
				if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migração(ões) revertida(s)\n", steps)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "quantidade de migrações a reverter")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão atual do esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrate(func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma migração aplicada")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Versão: %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	}
}

func newForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Define a versão do esquema sem executar migrações",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("versão inválida %q", args[0])
			}
			return withMigrate(func(m *migrate.Migrate) error {
				return m.Force(version)
			})
		},
	}
}

func newSeedAdminCmd() *cobra.Command {
	var username, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Cria o primeiro usuário administrador",
		Long:  "Cria um usuário administrador. A senha é lida da variável ADMIN_PASSWORD.",
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv("ADMIN_PASSWORD")
			if password == "" {
				return fmt.Errorf("defina a senha em ADMIN_PASSWORD")
			}

			admin, err := user.NewUser(username, name, password, user.RoleAdmin)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := database.NewPostgresDB(ctx, config.DatabaseFromEnv(), logger.NewNop())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.NewUserRepository(db.Pool()).Create(ctx, admin); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Administrador %q criado com ID %d\n", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "nome de login")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nome de exibição")
	return cmd
}
