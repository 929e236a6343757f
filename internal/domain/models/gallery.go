package models

// GalleryImage is one photo returned by the media API.
type GalleryImage struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Format    string   `json:"format"`
	Folder    string   `json:"folder,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	Tags      []string `json:"tags"`
}

// GalleryPage is one cursor-delimited page of gallery images.
type GalleryPage struct {
	Images     []GalleryImage `json:"images"`
	NextCursor string         `json:"nextCursor,omitempty"`
	TotalCount int            `json:"totalCount"`
}
