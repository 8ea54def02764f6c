// Package ui renders progress for the wistia CLI.
//
// # Overview
//
// Start reports a long-running step. When the writer is a terminal (checked
// with go-isatty) a Bubble Tea program animates a spinner styled with
// lipgloss:
//
//	▸▹▹▹▹ downloading the OriginalFile asset ...
//	▪▪▪▪▪ saved 12 MB to launch.mp4
//
// Otherwise the first and last frames are printed as plain lines, which
// keeps logs and CI output readable.
//
// # Usage Example
//
//	p := ui.Start(ctx, os.Stderr, "uploading clip.mp4 ...")
//	res, err := uploader.Send(ctx)
//	if err != nil {
//		p.Stop()
//		return err
//	}
//	p.Finish("uploaded clip.mp4 as " + res.HashedID)
package ui
