package file_store

import "io"

// UploadStore persists user uploaded files (post thumbnails) and resolves
// their public URLs. Implementations: S3 (prod), local disk (dev), fake
// (tests).
type UploadStore interface {
	Store(r io.Reader, fileName string) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}
