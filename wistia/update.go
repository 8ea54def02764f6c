package wistia

// UpdateMediaRequest is a "medias update" request. ID is only used in the
// request path; the other fields are sent as query parameters when set.
type UpdateMediaRequest struct {
	// ID is the hashed id of the media, e.g. "abc1234567".
	ID string
	// Name is the media's new name.
	Name *string
	// NewStillMediaID is the hashed id of an image that replaces the still
	// shown before the player starts. Only valid for videos.
	NewStillMediaID *string
	// Description accepts plain text or markdown.
	Description *string
}

// NewUpdateMediaRequest starts an update for the media with hashed id id.
func NewUpdateMediaRequest(id string) UpdateMediaRequest {
	return UpdateMediaRequest{ID: id}
}

// WithName returns a copy of r with the new name set.
func (r UpdateMediaRequest) WithName(name string) UpdateMediaRequest {
	r.Name = ptr(name)
	return r
}

// WithNewStillMediaID returns a copy of r with the replacement still set.
func (r UpdateMediaRequest) WithNewStillMediaID(id string) UpdateMediaRequest {
	r.NewStillMediaID = ptr(id)
	return r
}

// WithDescription returns a copy of r with the new description set.
func (r UpdateMediaRequest) WithDescription(description string) UpdateMediaRequest {
	r.Description = ptr(description)
	return r
}

// Encode returns the set fields as a query string. The id is never included.
func (r UpdateMediaRequest) Encode() string {
	var q queryBuilder
	q.addOptional("name", r.Name).
		addOptional("new_still_media_id", r.NewStillMediaID).
		addOptional("description", r.Description)
	return q.String()
}
