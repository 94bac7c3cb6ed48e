package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BigBrown10/director-v2/internal/concepts"
	"github.com/BigBrown10/director-v2/internal/config"
	"github.com/BigBrown10/director-v2/internal/encryption"
	"github.com/BigBrown10/director-v2/internal/planner"
	"github.com/BigBrown10/director-v2/internal/queue"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		targetURL      string
		narrationPath  string
		conceptID      string
		username       string
		password       string
		styleName      string
		styleDesc      string
		styleTags      []string
		pacing         string
		zoomAggression int
		fontFamily     string
		primaryColor   string
		accentColor    string
		musicKeywords  []string
	)

	cmd := &cobra.Command{
		Use:   "submit [instruction]",
		Short: "Queue a new video job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instruction := ""
			if len(args) > 0 {
				instruction = strings.TrimSpace(args[0])
			}
			narration := strings.TrimSpace(narrationPath)
			if instruction == "" && narration == "" {
				return errors.New("provide an instruction argument or --narration")
			}
			if instruction != "" && narration != "" {
				return errors.New("instruction and --narration are mutually exclusive")
			}
			if strings.TrimSpace(targetURL) == "" {
				return errors.New("--url is required")
			}
			if (username == "") != (password == "") {
				return errors.New("--username and --password must be provided together")
			}

			signal := narration
			if instruction != "" {
				signal = planner.TextSignalPrefix + instruction
			}

			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *queue.Store) error {
				var sealed []byte
				if username != "" {
					key := cfg.EncryptionKey()
					if key == nil {
						return errors.New("credentials require encryption.key in the configuration")
					}
					var err error
					sealed, err = encryption.SealCredentials(key, encryption.Credentials{
						Username: username,
						Password: password,
					})
					if err != nil {
						return fmt.Errorf("seal credentials: %w", err)
					}
				}

				job, err := store.NewJob(cmd.Context(), queue.NewJobParams{
					Instruction:       signal,
					TargetURL:         strings.TrimSpace(targetURL),
					ConceptID:         strings.TrimSpace(conceptID),
					Styling:           buildStyling(styleName, styleDesc, styleTags, pacing, zoomAggression, fontFamily, primaryColor, accentColor, musicKeywords),
					CredentialsSealed: sealed,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued job %s\n", job.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&targetURL, "url", "u", "", "Target site URL (required)")
	cmd.Flags().StringVar(&narrationPath, "narration", "", "Narration audio file to transcribe instead of a text instruction")
	cmd.Flags().StringVar(&conceptID, "concept", "", "Creative concept id (see `director concepts`)")
	cmd.Flags().StringVar(&username, "username", "", "Login username for the target site")
	cmd.Flags().StringVar(&password, "password", "", "Login password for the target site")
	cmd.Flags().StringVar(&styleName, "style-name", "", "Custom concept name")
	cmd.Flags().StringVar(&styleDesc, "style-description", "", "Custom concept description")
	cmd.Flags().StringSliceVar(&styleTags, "style-tag", nil, "Custom concept mood tag (repeatable)")
	cmd.Flags().StringVar(&pacing, "pacing", "", "Pacing override: fast, medium, or slow")
	cmd.Flags().IntVar(&zoomAggression, "zoom-aggression", 0, "Zoom aggression override, 1 (subtle) to 5 (aggressive)")
	cmd.Flags().StringVar(&fontFamily, "font", "", "Overlay font family override")
	cmd.Flags().StringVar(&primaryColor, "primary-color", "", "Primary overlay color override")
	cmd.Flags().StringVar(&accentColor, "accent-color", "", "Accent overlay color override")
	cmd.Flags().StringSliceVar(&musicKeywords, "music-keyword", nil, "Music search keyword (repeatable)")

	return cmd
}

func buildStyling(name, desc string, tags []string, pacing string, zoom int, font, primary, accent string, music []string) *concepts.Styling {
	styling := &concepts.Styling{
		Name:           strings.TrimSpace(name),
		Description:    strings.TrimSpace(desc),
		Tags:           tags,
		Pacing:         concepts.Pacing(strings.ToLower(strings.TrimSpace(pacing))),
		ZoomAggression: zoom,
		FontFamily:     strings.TrimSpace(font),
		PrimaryColor:   strings.TrimSpace(primary),
		AccentColor:    strings.TrimSpace(accent),
		MusicKeywords:  music,
	}
	if styling.Name == "" && styling.Description == "" && len(styling.Tags) == 0 &&
		styling.Pacing == "" && styling.ZoomAggression == 0 && styling.FontFamily == "" &&
		styling.PrimaryColor == "" && styling.AccentColor == "" && len(styling.MusicKeywords) == 0 {
		return nil
	}
	return styling
}
