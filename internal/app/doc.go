// Package app implements the wistia command-line tool.
//
// # Overview
//
// Run is the composition root: it loads .env files and the TOML config,
// configures logging, resolves the access token and dispatches to one
// command. Each command is a thin layer over the wistia package that shows
// progress on stderr and prints its result to stdout.
//
// # Commands
//
//   - media: GetMedia, printed as JSON
//   - update: UpdateMedia with --name, --description and --still
//   - asset-url: secure (or, with --no-ssl, original) asset URL
//   - download: DownloadAsset to --out
//   - upload-file, upload-stream, upload-url: the three upload builders
//   - set-thumbnail: upload an image, then set it as a media's still
//
// Flags precede positional arguments, as with the standard flag package.
//
// # Output
//
// Results go to Options.Stdout as indented JSON (or a bare URL for
// asset-url). Progress lines and logs go to Options.Stderr, so stdout can be
// piped into other tools.
//
// # Error Handling
//
// Run returns library errors unchanged; callers can use errors.As on
// *wistia.RequestError and friends. ErrUsage marks a missing or unknown
// command or a wrong number of arguments.
package app
