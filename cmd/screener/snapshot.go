package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/snapshot"
	"github.com/jonathan/resume-screener/internal/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a page element as a multi-page PDF",
	Long: `Opens the page in headless Chrome, screenshots the element with the given id and
slices the image across A4 pages.`,
	RunE: runSnapshot,
}

var (
	snapshotURL      string
	snapshotElement  string
	snapshotFileName string
	snapshotPrecheck bool
)

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotURL, "url", "u", "", "Page URL (required)")
	snapshotCmd.Flags().StringVarP(&snapshotElement, "element", "e", "", "ID of the element to capture (required)")
	snapshotCmd.Flags().StringVar(&snapshotFileName, "filename", "", "Output file name (defaults to {element}.pdf)")
	snapshotCmd.Flags().BoolVar(&snapshotPrecheck, "precheck", false, "Fail fast when the server-rendered HTML lacks the element")

	_ = snapshotCmd.MarkFlagRequired("url")
	_ = snapshotCmd.MarkFlagRequired("element")

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	req := &types.SnapshotRequest{URL: snapshotURL, ElementID: snapshotElement, FileName: snapshotFileName}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot request: %w", err)
	}

	opts := []snapshot.Option{snapshot.WithLogger(logger)}
	if snapshotPrecheck {
		fetchOpts := snapshot.DefaultFetchOptions()
		fetchOpts.Timeout = cfg.SnapshotTimeoutDuration()
		opts = append(opts, snapshot.WithPrecheck(fetchOpts))
	}
	snapshotter := snapshot.New(snapshot.NewBrowserCapturer(logger), opts...)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SnapshotTimeoutDuration())
	defer cancel()

	art, err := snapshotter.Snapshot(ctx, req)
	if err != nil {
		return err
	}
	return emit(cmd.Context(), art, db.ExportKindSnapshot, nil, nil)
}
