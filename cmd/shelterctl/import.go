package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mem "shelter-dashboard/internal/adapters/storage/memory"
	pg "shelter-dashboard/internal/adapters/storage/postgres"
)

func importCmd() *cobra.Command {
	var (
		dsn  string
		file string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Carga un JSON de registros en el record store de Postgres",
		Long: `Lee un array JSON de documentos (mismo formato que animals_seed_file) y los
inserta en la tabla animals en el orden del archivo. No deduplica.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" || file == "" {
				return fmt.Errorf("--dsn and --file are required")
			}

			recs, err := mem.LoadAnimalsFile(file)
			if err != nil {
				return err
			}

			db, err := pg.Connect(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := pg.NewAnimalsRepo(db)
			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("failed to ensure schema: %w", err)
			}
			if err := repo.Insert(cmd.Context(), recs...); err != nil {
				return fmt.Errorf("failed to insert records: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("imported %d records", len(recs))))
			return err
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "DSN de Postgres")
	cmd.Flags().StringVar(&file, "file", "", "archivo JSON con los registros")

	return cmd
}
