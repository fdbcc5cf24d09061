// shelterctl consulta la API del dashboard desde la terminal: tabla de animales,
// conteo por raza y predicción de adopción. También carga el record store de Postgres.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelter-dashboard/internal/dashboard"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:               "shelterctl",
		Short:             "Cliente de terminal del shelter dashboard",
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./shelterctl.yaml)")
	rootCmd.PersistentFlags().String("server", "http://127.0.0.1:3000", "URL base de la API")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "timeout por request")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(animalsCmd())
	rootCmd.AddCommand(breedsCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(importCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("shelterctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("SHELTERCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func newClient() (*dashboard.Client, error) {
	return dashboard.NewClient(viper.GetString("server"), viper.GetDuration("timeout"))
}
