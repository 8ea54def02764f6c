package wistia

// MediaType is the kind of file a media holds.
type MediaType string

const (
	MediaTypeVideo                   MediaType = "Video"
	MediaTypeAudio                   MediaType = "Audio"
	MediaTypeImage                   MediaType = "Image"
	MediaTypePdfDocument             MediaType = "PdfDocument"
	MediaTypeMicrosoftOfficeDocument MediaType = "MicrosoftOfficeDocument"
	MediaTypeSwf                     MediaType = "Swf"
	MediaTypeUnknown                 MediaType = "UnknownType"
)

// MediaStatus is the processing stage of an uploaded media.
type MediaStatus string

const (
	// MediaStatusQueued: waiting in the queue to be processed.
	MediaStatusQueued MediaStatus = "queued"
	// MediaStatusProcessing: actively being processed.
	MediaStatusProcessing MediaStatus = "processing"
	// MediaStatusReady: fully processed and ready for embedding and viewing.
	MediaStatusReady MediaStatus = "ready"
	// MediaStatusFailed: could not be processed, usually a format or size error.
	MediaStatusFailed MediaStatus = "failed"
)

// Media mirrors the Data API "medias show" payload.
type Media struct {
	HashedID string    `json:"hashed_id"`
	ID       uint64    `json:"id"`
	Name     string    `json:"name"`
	Type     MediaType `json:"type"`
	Created  string    `json:"created"`
	Updated  string    `json:"updated"`
	// Duration is only set for audio and video.
	Duration    *float64    `json:"duration,omitempty"`
	Status      MediaStatus `json:"status"`
	Description string      `json:"description"`
	Progress    float64     `json:"progress"`
	Thumbnail   Thumbnail   `json:"thumbnail"`
	Project     ProjectInfo `json:"project"`
	EmbedCode   string      `json:"embedCode,omitempty"`
	Assets      []Asset     `json:"assets"`
	Section     *string     `json:"section,omitempty"`
	Archived    bool        `json:"archived"`
}

// MediaInfo is the narrower payload returned by "medias update". It has no
// assets, project, embed code or archived flag.
type MediaInfo struct {
	HashedID    string      `json:"hashed_id"`
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Type        MediaType   `json:"type"`
	Created     string      `json:"created"`
	Updated     string      `json:"updated"`
	Duration    *float64    `json:"duration,omitempty"`
	Status      MediaStatus `json:"status"`
	Description string      `json:"description"`
	Progress    float64     `json:"progress"`
	Thumbnail   Thumbnail   `json:"thumbnail"`
	Section     *string     `json:"section,omitempty"`
}

// Asset is one encoded or derived file of a media.
type Asset struct {
	ContentType string `json:"contentType"`
	FileSize    uint64 `json:"fileSize"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	// Height and Width are not populated for audio assets.
	Height uint64 `json:"height,omitempty"`
	Width  uint64 `json:"width,omitempty"`
}

// Thumbnail describes the still image of a media.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  uint64 `json:"width"`
	Height uint64 `json:"height"`
}

// ProjectInfo references the project a media belongs to.
type ProjectInfo struct {
	HashedID string `json:"hashed_id"`
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
}
