package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/five82/wistia/internal/logging"
	"github.com/five82/wistia/wistia"
)

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, r *runner, args []string) error
}

var commands = map[string]command{}

func register(cmd command) {
	commands[cmd.name] = cmd
}

func init() {
	register(command{"media", "<media-id>", "print a media's metadata", runMedia})
	register(command{"update", "[--name N] [--description D] [--still ID] <media-id>", "update a media's name, description or thumbnail", runUpdate})
	register(command{"asset-url", "[--type T] [--no-ssl] <media-id>", "print the delivery URL of an asset", runAssetURL})
	register(command{"download", "[--type T] [--out PATH] <media-id>", "download an asset to a file", runDownload})
	register(command{"upload-file", "[upload flags] <path>", "upload a local file", runUploadFile})
	register(command{"upload-stream", "[upload flags] [--filename F] <path|->", "upload a file or stdin as a stream", runUploadStream})
	register(command{"upload-url", "[upload flags] [--stream] <url>", "import media from a public URL", runUploadURL})
	register(command{"set-thumbnail", "[upload flags] <media-id> <image>", "upload an image and use it as a media's thumbnail", runSetThumbnail})
}

func newFlagSet(cmd string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: wistia %s %s\n", cmd, commands[cmd].usage)
		fs.PrintDefaults()
	}
	return fs
}

// positional returns exactly n positional arguments or a usage error.
func positional(fs *flag.FlagSet, names ...string) ([]string, error) {
	if fs.NArg() != len(names) {
		fs.Usage()
		return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrUsage, fs.Name(), len(names), fs.NArg())
	}
	return fs.Args(), nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func runMedia(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("media", r.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "media-id")
	if err != nil {
		return err
	}

	p := r.step(ctx, "%s: retrieving media info ...", pos[0])
	media, err := r.dataClient().GetMedia(ctx, pos[0])
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish(fmt.Sprintf("retrieved %q (%s)", media.Name, media.Status))
	return printJSON(r.stdout, media)
}

func runUpdate(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("update", r.stderr)
	name := fs.String("name", "", "new media name")
	description := fs.String("description", "", "new media description")
	still := fs.String("still", "", "hashed id of an image media to use as the thumbnail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "media-id")
	if err != nil {
		return err
	}

	req := wistia.NewUpdateMediaRequest(pos[0])
	if isSet(fs, "name") {
		req = req.WithName(*name)
	}
	if isSet(fs, "description") {
		req = req.WithDescription(*description)
	}
	if isSet(fs, "still") {
		req = req.WithNewStillMediaID(*still)
	}

	p := r.step(ctx, "%s: updating media ...", pos[0])
	info, err := r.dataClient().UpdateMedia(ctx, req)
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish("updated media " + info.HashedID)
	return printJSON(r.stdout, info)
}

func runAssetURL(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("asset-url", r.stderr)
	assetType := fs.String("type", wistia.OriginalAsset, "asset type, e.g. OriginalFile or IphoneVideoFile")
	noSSL := fs.Bool("no-ssl", false, "print the asset's own http URL instead of the secure one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "media-id")
	if err != nil {
		return err
	}

	p := r.step(ctx, "%s: retrieving media info ...", pos[0])
	media, err := r.dataClient().GetMedia(ctx, pos[0])
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish("retrieved media info")

	resolve := media.AssetURL
	if *noSSL {
		resolve = media.AssetURLInsecure
	}
	link, err := resolve(*assetType)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.stdout, link)
	return err
}

func runDownload(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("download", r.stderr)
	assetType := fs.String("type", wistia.OriginalAsset, "asset type to download")
	out := fs.String("out", "", "destination file (default <media-id>.mp4)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "media-id")
	if err != nil {
		return err
	}
	dest := *out
	if dest == "" {
		dest = pos[0] + ".mp4"
	}

	client := r.dataClient()
	p := r.step(ctx, "%s: retrieving media info ...", pos[0])
	media, err := client.GetMedia(ctx, pos[0])
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish("retrieved media info")

	p = r.step(ctx, "downloading the %s asset ...", *assetType)
	data, err := client.DownloadAsset(ctx, wistia.DownloadAssetRequest{
		Media:     media,
		AssetType: *assetType,
		FilePath:  dest,
	})
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish(fmt.Sprintf("saved %s to %s", humanize.Bytes(uint64(len(data))), dest))
	return nil
}

// uploadFlags are the optional Upload API parameters shared by the upload
// commands.
type uploadFlags struct {
	fs          *flag.FlagSet
	projectID   *string
	name        *string
	description *string
	contactID   *string
}

func addUploadFlags(fs *flag.FlagSet) uploadFlags {
	return uploadFlags{
		fs:          fs,
		projectID:   fs.String("project", "", "hashed id of the destination project"),
		name:        fs.String("name", "", "media name (defaults to the filename)"),
		description: fs.String("description", "", "media description, basic HTML allowed"),
		contactID:   fs.String("contact", "", "contact id (defaults to the account owner)"),
	}
}

// uploader is satisfied by every upload builder.
type uploader[T any] interface {
	ProjectID(string) T
	Name(string) T
	Description(string) T
	ContactID(string) T
	Send(context.Context) (*wistia.UploadResponse, error)
}

func applyUploadFlags[T uploader[T]](f uploadFlags, u T) T {
	if isSet(f.fs, "project") {
		u = u.ProjectID(*f.projectID)
	}
	if isSet(f.fs, "name") {
		u = u.Name(*f.name)
	}
	if isSet(f.fs, "description") {
		u = u.Description(*f.description)
	}
	if isSet(f.fs, "contact") {
		u = u.ContactID(*f.contactID)
	}
	return u
}

func send[T uploader[T]](ctx context.Context, r *runner, what string, u T) (*wistia.UploadResponse, error) {
	p := r.step(ctx, "uploading %s ...", what)
	res, err := u.Send(ctx)
	if err != nil {
		p.Stop()
		return nil, err
	}
	p.Finish(fmt.Sprintf("uploaded %s as %s", what, res.HashedID))
	logging.Info().
		Str("source", what).
		Str("hashed_id", res.HashedID).
		Str("status", string(res.Status)).
		Msg("upload completed")
	return res, nil
}

func runUploadFile(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("upload-file", r.stderr)
	flags := addUploadFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "path")
	if err != nil {
		return err
	}

	u := applyUploadFlags(flags, r.uploadClient().File(pos[0]))
	res, err := send(ctx, r, pos[0], u)
	if err != nil {
		return err
	}
	return printJSON(r.stdout, res)
}

func runUploadStream(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("upload-stream", r.stderr)
	flags := addUploadFlags(fs)
	filename := fs.String("filename", "", "filename reported to Wistia (default: base name of path, or "+wistia.DefaultFilename+" for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "path")
	if err != nil {
		return err
	}

	var (
		src  io.Reader = os.Stdin
		name           = *filename
	)
	if pos[0] != "-" {
		f, err := os.Open(pos[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", pos[0], err)
		}
		defer func() { _ = f.Close() }()
		src = f
		if name == "" {
			name = filepath.Base(pos[0])
		}
	}

	u := applyUploadFlags(flags, r.uploadClient().Stream(src, name))
	res, err := send(ctx, r, "stream", u)
	if err != nil {
		return err
	}
	return printJSON(r.stdout, res)
}

func runUploadURL(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("upload-url", r.stderr)
	flags := addUploadFlags(fs)
	stream := fs.Bool("stream", false, "download the media locally and upload its bytes instead of asking Wistia to fetch it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "url")
	if err != nil {
		return err
	}
	client := r.uploadClient()

	var res *wistia.UploadResponse
	if *stream {
		p := r.step(ctx, "downloading %s ...", pos[0])
		u, err := client.StreamFromURL(ctx, pos[0])
		if err != nil {
			p.Stop()
			return err
		}
		p.Finish("downloaded " + pos[0])
		res, err = send(ctx, r, "stream", applyUploadFlags(flags, u))
		if err != nil {
			return err
		}
	} else {
		res, err = send(ctx, r, pos[0], applyUploadFlags(flags, client.URL(pos[0])))
		if err != nil {
			return err
		}
	}
	return printJSON(r.stdout, res)
}

func runSetThumbnail(ctx context.Context, r *runner, args []string) error {
	fs := newFlagSet("set-thumbnail", r.stderr)
	flags := addUploadFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, "media-id", "image")
	if err != nil {
		return err
	}

	image, err := send(ctx, r, pos[1], applyUploadFlags(flags, r.uploadClient().File(pos[1])))
	if err != nil {
		return err
	}

	p := r.step(ctx, "%s: setting thumbnail to %s ...", pos[0], image.HashedID)
	info, err := r.dataClient().UpdateMedia(ctx,
		wistia.NewUpdateMediaRequest(pos[0]).WithNewStillMediaID(image.HashedID))
	if err != nil {
		p.Stop()
		return err
	}
	p.Finish("thumbnail updated")
	return printJSON(r.stdout, info)
}
