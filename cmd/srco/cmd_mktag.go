package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
)

func newMktagCmd(opts *globalOptions) *cobra.Command {
	var (
		name     string
		message  string
		noTagger  bool
		createRef bool
	)

	cmd := &cobra.Command{
		Use:   "mktag <object> -n <name> [-m <message>] [--create-ref]",
		Short: "Create an annotated tag object",
		Long: `Create a tag object naming <object> and print its digest. The tagged
object must exist; its kind is recorded in the tag.

The tagger is taken from SRCO_TAGGER_NAME, SRCO_TAGGER_EMAIL and
SRCO_TAGGER_DATE, falling back to the SRCO_AUTHOR_* variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("a tag name is required (-n)")
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			hash, err := repo.ResolveName(args[0])
			if err != nil {
				return err
			}

			kind, _, err := repo.Store().ReadRaw(hash)
			if err != nil {
				return err
			}

			t := &tag.Tag{
				Object:     hash,
				ObjectType: kind,
				Name:       name,
				Message:    ensureTrailingNewline(message),
			}
			if !noTagger {
				tagger, err := identityFromEnv("TAGGER")
				if err != nil {
					return err
				}
				t.Tagger = tagger.FormatForGit()
			}

			tagHash, err := repo.WriteObject(t)
			if err != nil {
				return err
			}

			if createRef {
				ref, err := refs.NewTagRef(name)
				if err != nil {
					return err
				}
				if err := repo.Refs().UpdateRef(ref, tagHash); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), tagHash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Tag name")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Tag message")
	cmd.Flags().BoolVar(&noTagger, "no-tagger", false, "Omit the tagger line")
	cmd.Flags().BoolVar(&createRef, "create-ref", false, "Also point refs/tags/<name> at the new tag")

	return cmd
}
