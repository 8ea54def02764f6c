package wistia

const (
	// DataAPI is the base URL of the Wistia Data API.
	DataAPI = "https://api.wistia.com"
	// UploadAPI is the Wistia Upload API endpoint.
	UploadAPI = "https://upload.wistia.com"
	// EnvVarName holds the API access token for the FromEnv constructors.
	EnvVarName = "WISTIA_API_TOKEN"

	// OriginalAsset is the asset type of the file that was originally uploaded.
	OriginalAsset = "OriginalFile"
	// DefaultFilename names stream uploads and secure delivery URLs.
	DefaultFilename = "file.mp4"

	secureDeliveryURL = "https://embed-ssl.wistia.com/deliveries/"
	defaultUserAgent  = "wistia-go/0.1"
)
