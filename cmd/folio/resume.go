package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/spf13/cobra"
)

type resumeClient interface {
	PrimaryResume(ctx context.Context) (domain.Resume, error)
	DownloadResume(ctx context.Context, id domain.ID) ([]byte, string, error)
}

// NewResumeCmd creates the resume command with explicit dependencies.
func NewResumeCmd(client resumeClient) *cobra.Command {
	if client == nil {
		panic("NewResumeCmd: client dependency cannot be nil")
	}

	var output string

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Download the primary resume",
		Long: `Download the primary resume.

USAGE:
    folio resume [--output <path>]

Without --output the file is saved in the current directory under the name
the server sends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := downloadResume(cmd.Context(), client, output)
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Saved resume to %s", path))
			return nil
		},
	}
	resumeCmd.Flags().StringVarP(&output, "output", "o", "", "Where to save the file")

	return resumeCmd
}

// downloadResume saves the primary resume and returns the path written.
func downloadResume(ctx context.Context, client resumeClient, output string) (string, error) {
	resume, err := client.PrimaryResume(ctx)
	if err != nil {
		return "", fmt.Errorf("resume: %w", err)
	}
	data, name, err := client.DownloadResume(ctx, resume.ID)
	if err != nil {
		return "", fmt.Errorf("resume download: %w", err)
	}

	path := output
	if path == "" {
		path = filepath.Base(name)
		if name == "" || path == "." || path == string(filepath.Separator) {
			path = resumeFileName(resume)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("resume save: %w", err)
	}
	return path, nil
}

func resumeFileName(r domain.Resume) string {
	if r.FileName != "" {
		return filepath.Base(r.FileName)
	}
	return "resume.pdf"
}

var resumeCmd = NewResumeCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(resumeCmd)
}
