// pkg/cli/root.go
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"github.com/spf13/cobra"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "cloud-file-uploader",
		Short: "Upload local files to Amazon S3 or Google Cloud Storage",
		Long: `A tool for uploading files from a local directory to Amazon S3 or
Google Cloud Storage, filtered by the extension allow-list in an INI
configuration file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetLevel(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newUploadCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// The per-file failure lines and summary are already printed;
		// fatal errors have not been reported yet.
		if !errors.Is(err, common.ErrUploadsFailed) {
			logger.Error("%v", err)
		}
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps a run outcome to the process exit code: 0 when every
// upload succeeded, 1 when one or more uploads failed, 2 for fatal errors
// that aborted the run before any upload was attempted.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, common.ErrUploadsFailed):
		return 1
	default:
		return 2
	}
}
