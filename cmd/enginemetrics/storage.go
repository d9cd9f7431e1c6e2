package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/discochess/enginemetrics"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Work with files in blob storage",
}

var storageListCmd = &cobra.Command{
	Use:   "list [PREFIX]",
	Short: "List stored files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
			files, err := client.ListFiles(ctx, optionalArg(args))
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Println(f)
			}
			fmt.Fprintf(os.Stderr, "%d files\n", len(files))
			return nil
		})
	},
}

var storageLoadCmd = &cobra.Command{
	Use:   "load [PATH]",
	Short: "Preview a stored file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
			preview, err := client.LoadFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("File:   %s\n", preview.FilePath)
			fmt.Printf("Length: %d characters\n\n", preview.ContentLength)
			fmt.Println(preview.ContentPreview)
			return nil
		})
	},
}

var storageIngestCmd = &cobra.Command{
	Use:   "ingest [PREFIX]",
	Short: "Ingest every PGN, JSON, and Markdown file under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
			res, err := client.IngestFromStorage(ctx, optionalArg(args))
			if err != nil {
				return err
			}
			for _, d := range res.Details {
				fmt.Println(d)
			}
			fmt.Printf("\nProcessed: %d  Errors: %d  Skipped: %d\n", res.Processed, res.Errors, res.Skipped)
			return nil
		})
	},
}

var (
	uploadUser     string
	uploadCompress string
)

var storageUploadCmd = &cobra.Command{
	Use:   "upload [FILE]",
	Short: "Upload a local file to users/{user}/",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
			res, err := client.UploadFile(ctx, enginemetrics.UploadRequest{
				FileName:    filepath.Base(args[0]),
				Content:     content,
				UserID:      uploadUser,
				Compression: uploadCompress,
			})
			if err != nil {
				return err
			}
			if res.Compression != "" {
				fmt.Printf("Uploaded %s (%d bytes, %d stored)\n", res.FilePath, res.FileSize, res.StoredSize)
				return nil
			}
			fmt.Printf("Uploaded %s (%d bytes)\n", res.FilePath, res.FileSize)
			return nil
		})
	},
}

func init() {
	storageUploadCmd.Flags().StringVar(&uploadUser, "user", "", "owner of the upload (default anonymous)")
	storageUploadCmd.Flags().StringVar(&uploadCompress, "compress", "", "compress before storing: zst or gz")
	storageCmd.AddCommand(storageListCmd, storageLoadCmd, storageIngestCmd, storageUploadCmd)
	rootCmd.AddCommand(storageCmd)
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
