// Package wistia is a client for the Wistia Data API and Upload API.
//
// # Overview
//
// The package covers three jobs: reading and updating media metadata,
// resolving download URLs for a media's assets, and uploading files,
// streams or public URLs. Every call is a single HTTP request whose
// response is decoded into the types in media.go and upload_response.go.
//
// # Data API
//
//	client, err := wistia.NewClientFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	media, err := client.GetMedia(ctx, "abc1234567")
//	if err != nil {
//		log.Fatal(err)
//	}
//	src, err := media.SourceURL()
//
//	info, err := client.UpdateMedia(ctx,
//		wistia.NewUpdateMediaRequest("abc1234567").WithName("Launch video"))
//
// # Upload API
//
// Uploads go through one of three builders created from an UploadClient:
//
//   - File: multipart form streaming a local file
//   - Stream: multipart form streaming any io.Reader
//   - URL: url-encoded form asking Wistia to import a public link
//
// Builder setters return a modified copy and do no validation; Send checks
// that the access token and payload are present.
//
//	uploads := wistia.NewUploadClient(token)
//	res, err := uploads.File("./intro.mp4").
//		Name("Intro").
//		Description("First <b>cut</b>").
//		Send(ctx)
//
// # Errors
//
// API failures (status 400-599) are returned as *RequestError, carrying the
// status code, a reason such as "404 Client Error: Not Found for url:
// api.wistia.com/v1/medias/x.json" and the decoded WistiaError body. Local
// failures use *FileNotFoundError, *EnvVarNotFoundError,
// *AssetNotFoundError and ErrMediaIsRequired. Transport, I/O, JSON and
// validation errors are returned unchanged (or wrapped with %w), so
// errors.As can tell an API rejection from a network failure.
//
// # Transport
//
// Clients never retry and set no timeout of their own. Pass a configured
// *http.Client (or any Doer) with WithHTTPClient to control timeouts and
// connection reuse. Upload clients close the request body after Do returns,
// so a Doer that fails without reading it does not strand the multipart
// writer.
//
// # Logging
//
// Nothing is logged by default. WithLogger installs a zerolog.Logger that
// receives a debug event per request and an error event per *RequestError.
package wistia
