package cli

import (
	"context"
	"fmt"

	"github.com/bstardust/cloud-file-uploader/internal/config"
	"github.com/bstardust/cloud-file-uploader/internal/progress"
	"github.com/bstardust/cloud-file-uploader/internal/scanner"
	"github.com/bstardust/cloud-file-uploader/internal/uploader"
	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"github.com/bstardust/cloud-file-uploader/pkg/storage"
	"github.com/bstardust/cloud-file-uploader/pkg/storage/gcs"
	"github.com/bstardust/cloud-file-uploader/pkg/storage/s3"
	"github.com/spf13/cobra"
)

type uploadOptions struct {
	configPath       string
	directory        string
	provider         string
	dryRun           bool
	preserveMetadata bool
	concurrency      int
}

func newUploadCommand() *cobra.Command {
	opts := uploadOptions{}

	cmd := &cobra.Command{
		Use:   "upload --config <path> --directory <path>",
		Short: "Upload matching files from a directory to the configured bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to the INI configuration file (required)")
	cmd.Flags().StringVarP(&opts.directory, "directory", "d", "", "Directory to upload files from (required)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Provider to upload with (s3 or gcs); required when the config has both sections")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Simulate the upload without uploading anything")
	cmd.Flags().BoolVar(&opts.preserveMetadata, "preserve-metadata", true, "Preserve file metadata as object metadata")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Number of concurrent uploads")

	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func runUpload(ctx context.Context, opts uploadOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	providerName, section, err := cfg.Select(opts.provider)
	if err != nil {
		return err
	}

	sink, cleanup, err := newProvider(ctx, providerName, section)
	if err != nil {
		return err
	}
	defer cleanup()

	paths, err := scanner.Scan(opts.directory, section.Extensions())
	if err != nil {
		return err
	}

	reporter := progress.New()
	up := uploader.New(sink, reporter, uploader.Options{
		Concurrency:      opts.concurrency,
		DryRun:           opts.dryRun,
		PreserveMetadata: opts.preserveMetadata,
	})

	failed := 0
	for _, res := range up.Run(ctx, paths) {
		if !res.Ok() {
			failed++
		}
	}

	reporter.Finish()

	if failed > 0 {
		return common.ErrUploadsFailed
	}

	return nil
}

// newProvider builds the storage client for the selected section. The
// returned cleanup releases any client connection.
func newProvider(ctx context.Context, provider config.Provider, section config.Section) (storage.Provider, func(), error) {
	switch provider {
	case config.ProviderS3:
		client, err := s3.New(s3.Config{
			AccessKey: section.Get("access_key"),
			SecretKey: section.Get("secret_key"),
			Bucket:    section.Get("bucket_name"),
			Region:    section.Get("region"),
			Endpoint:  section.Get("endpoint"),
		})
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil

	case config.ProviderGCS:
		client, err := gcs.New(ctx, gcs.Config{
			CredentialsPath: section.Get("credentials_path"),
			ProjectID:       section.Get("project_id"),
			Bucket:          section.Get("bucket_name"),
		})
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported provider %q", provider)
}
