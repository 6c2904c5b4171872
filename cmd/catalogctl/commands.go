package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mavhungutrezzy/umami-tube/app"
	"github.com/mavhungutrezzy/umami-tube/config"
	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// session is an open database plus the settings it was opened with
type session struct {
	env   *config.EnvironmentVariable
	log   *logger.Logger
	store *database.GORMStore
}

func open() (*session, error) {
	if err := config.LoadENV(); err != nil {
		return nil, err
	}
	env, err := config.Get()
	if err != nil {
		return nil, err
	}
	log, err := app.NewLogger(env)
	if err != nil {
		return nil, err
	}
	store, err := database.StartGORM(env, log)
	if err != nil {
		return nil, err
	}
	return &session{env: env, log: log, store: store}, nil
}

func (s *session) close() {
	_ = s.store.Close()
	s.log.Sync()
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every catalog table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()
			return s.store.Init()
		},
	}
}

func seedCmd() *cobra.Command {
	var operatorEmail string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the taxonomies and optionally an operator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.store.Init(); err != nil {
				return err
			}
			return database.NewSeeder(s.store.GetDB(), s.log).SeedAll(cmd.Context(), operatorEmail)
		},
	}
	cmd.Flags().StringVar(&operatorEmail, "operator-email", os.Getenv("ADMIN_EMAIL"), "email of the account to promote to admin")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		out    string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := url.ParseQuery(filter)
			if err != nil {
				return fmt.Errorf("invalid --filter: %w", err)
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			data, err := services.NewExportService(s.store.GetDB()).Workbook(cmd.Context(), params)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", fmt.Sprintf("catalog-%s.xlsx", time.Now().UTC().Format("20060102")), "output file")
	cmd.Flags().StringVar(&filter, "filter", "", `query string of catalog filters, e.g. "city=cape&status=open"`)
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		email  string
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			if s.env.JWT_SECRET == "" {
				return errors.New("JWT_SECRET environment variable is not set")
			}

			var user model.User
			err = s.store.GetDB().WithContext(cmd.Context()).
				Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
				First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no account with email %s", email)
			}
			if err != nil {
				return err
			}

			manager := auth.NewJWTManager(auth.JWTConfig{
				Secret: s.env.JWT_SECRET,
				Expiry: expiry,
				Issuer: s.env.JWT_ISSUER,
			})
			token, _, err := manager.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role, user.TokenVersion)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().DurationVar(&expiry, "expiry", time.Hour, "token lifetime")
	return cmd
}

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Remove blacklist entries for tokens that have expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			removed, err := auth.NewBlacklistService(s.store.GetDB()).CleanupExpiredTokens(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries\n", removed)
			return nil
		},
	}
}
