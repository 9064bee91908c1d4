package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/crypto"
	"github.com/MKhiriev/go-hds-keeper/internal/envelope"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/repair"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

var (
	errNotRepairable = errors.New("value is not a repairable ciphertext")
	errActorRequired = errors.New("--actor is required")
)

// options are the flags shared by the commands that need key material.
type options struct {
	secret     string
	actor      string
	schemaFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "hdsctl",
		Short:         "Inspect and repair HDS protected field values",
		Version:       buildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.secret, "secret", "", "master secret (defaults to $APP_MASTER_SECRET)")
	root.PersistentFlags().StringVar(&opts.actor, "actor", "", "actor id the field key is derived for")
	root.PersistentFlags().StringVar(&opts.schemaFile, "schema", "", "field policy file (defaults to $COMPLIANCE_SCHEMA_FILE)")

	root.AddCommand(
		newEncryptCmd(opts),
		newDecryptCmd(opts),
		newClassifyCmd(),
		newRepairCmd(),
		newPseudonymizeCmd(opts),
		newSealCmd(opts),
		newOpenCmd(opts),
		newTokenCmd(),
	)
	return root
}

func newEncryptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <value>",
		Short: "Encrypt a field value for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cipher, err := opts.cipher(cmd)
			if err != nil {
				return err
			}

			cipherText, err := cipher.EncryptField(args[0], opts.actor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cipherText)
			return nil
		},
	}
}

func newDecryptCmd(opts *options) *cobra.Command {
	var tryRepair bool

	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext>",
		Short: "Decrypt a stored field value for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cipher, err := opts.cipher(cmd)
			if err != nil {
				return err
			}

			candidates := []string{args[0]}
			if tryRepair && !repair.IsValidFormat(args[0]) {
				if repaired := repair.RepairCandidates(args[0]); len(repaired) > 0 {
					candidates = repaired
				}
			}

			var result crypto.DecryptResult
			for _, candidate := range candidates {
				result, err = cipher.DecryptField(candidate, opts.actor)
				if err != nil {
					return err
				}
				if result.OK() {
					fmt.Fprintln(cmd.OutOrStdout(), result.String())
					return nil
				}
			}
			return fmt.Errorf("decryption failed: %s", result.Failure)
		},
	}
	cmd.Flags().BoolVar(&tryRepair, "repair", false, "repair a drifted IV before decrypting")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <value>...",
		Short: "Report the storage state of field values",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, value := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", repair.Classify(value), value)
			}
		},
	}
}

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <value>",
		Short: "Fix the IV of a malformed ciphertext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repair.IsValidFormat(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), args[0])
				return nil
			}

			repaired, ok := repair.AttemptRepair(args[0])
			if !ok {
				return errNotRepairable
			}
			fmt.Fprintln(cmd.OutOrStdout(), repaired)
			return nil
		},
	}
}

func newPseudonymizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pseudonymize <recordType> <field> <value>",
		Short: "Compute the search pseudonym of a field value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			compliance, _, err := opts.openEnvelope(cmd)
			if err != nil {
				return err
			}

			recordType, field := args[0], args[1]
			policy, ok := compliance.Policy(recordType)
			if !ok {
				return fmt.Errorf("unknown record type %q", recordType)
			}
			if !policy.IsPseudonymized(field) {
				return fmt.Errorf("field %q of %q is not pseudonymized", field, recordType)
			}

			fmt.Fprintln(cmd.OutOrStdout(), compliance.Pseudonymize(recordType, field, args[2]))
			return nil
		},
	}
}

func newSealCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seal <recordType> <record-json>",
		Short: "Turn a plaintext record into its stored document",
		Long: "Encrypts the sensitive fields of a record, indexes its pseudonymized fields and\n" +
			"prints the document with its _hds and _pseudoIndex blocks.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.actor == "" {
				return errActorRequired
			}
			compliance, _, err := opts.openEnvelope(cmd)
			if err != nil {
				return err
			}

			var record models.Record
			if err = json.Unmarshal([]byte(args[1]), &record); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}

			stored, err := compliance.PrepareForStorage(record, args[0], opts.actor)
			if err != nil {
				return err
			}

			doc, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}
}

func newOpenCmd(opts *options) *cobra.Command {
	var forEditing bool

	cmd := &cobra.Command{
		Use:   "open <recordType> <stored-json>",
		Short: "Decrypt a stored document for display",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.actor == "" {
				return errActorRequired
			}
			compliance, log, err := opts.openEnvelope(cmd)
			if err != nil {
				return err
			}

			var stored models.StoredRecord
			if err = json.Unmarshal([]byte(args[1]), &stored); err != nil {
				return fmt.Errorf("decode stored document: %w", err)
			}
			if !compliance.IsCompliant(stored) {
				log.Warn().Str("record_type", args[0]).Msg("document was not written through the compliance envelope")
			}

			record, err := compliance.DecryptForDisplay(stored, args[0], opts.actor)
			if err != nil {
				return err
			}
			policy, _ := compliance.Policy(args[0])
			for _, field := range policy.Sensitive {
				if text, isString := record[field].(string); isString {
					record[field] = repair.CleanDisplayField(text, forEditing, "")
				}
			}

			doc, err := json.Marshal(record)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&forEditing, "edit", false, "blank unreadable fields instead of showing a fallback")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		issuer  string
		signKey string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <actor>",
		Short: "Issue a bearer token for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var app config.App
			if err := env.ParseWithOptions(&app, env.Options{Prefix: "APP_"}); err != nil {
				return err
			}
			if issuer == "" {
				issuer = app.TokenIssuer
			}
			if issuer == "" {
				issuer = config.DefaultTokenIssuer
			}
			if signKey == "" {
				signKey = app.TokenSignKey
			}

			token, err := utils.GenerateJWTToken(issuer, args[0], ttl, signKey)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return nil
		},
	}
	cmd.Flags().StringVar(&issuer, "issuer", "", "token issuer (defaults to $APP_TOKEN_ISSUER)")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "signing key (defaults to $APP_TOKEN_SIGN_KEY)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

// load reads the APP_ and COMPLIANCE_ environment and applies the flags on top.
func (o *options) load() (config.StructuredConfig, error) {
	var cfg config.StructuredConfig
	if err := env.ParseWithOptions(&cfg.App, env.Options{Prefix: "APP_"}); err != nil {
		return cfg, err
	}
	if err := env.ParseWithOptions(&cfg.Compliance, env.Options{Prefix: "COMPLIANCE_"}); err != nil {
		return cfg, err
	}

	if o.secret != "" {
		cfg.App.MasterSecret = o.secret
	}
	if o.schemaFile != "" {
		cfg.Compliance.SchemaFile = o.schemaFile
	}
	return cfg, nil
}

func (o *options) cipher(cmd *cobra.Command) (crypto.FieldCipher, error) {
	if o.actor == "" {
		return nil, errActorRequired
	}
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}

	log := logger.NewConsoleLogger("hdsctl", cmd.ErrOrStderr())
	keys := crypto.NewKeyStore(cfg.App.MasterSecret)
	if keys.UsesDefaultSecret() {
		log.Warn().Msg("no master secret given, using the default secret")
	}
	return crypto.NewFieldCipher(keys, log), nil
}

func (o *options) openEnvelope(cmd *cobra.Command) (envelope.Envelope, *logger.Logger, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewConsoleLogger("hdsctl", cmd.ErrOrStderr())

	schema, err := envelope.LoadSchema(cfg.Compliance.SchemaFile)
	if err != nil {
		return nil, nil, err
	}
	keys := crypto.NewKeyStore(cfg.App.MasterSecret)
	compliance, err := envelope.NewEnvelope(crypto.NewFieldCipher(keys, log), keys, schema, log)
	if err != nil {
		return nil, nil, err
	}
	return compliance, log, nil
}
