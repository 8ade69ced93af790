package api

import (
	"context"
	"io"
)

// FileService wraps the backend's uploaded-file endpoints.
type FileService struct {
	client *Client
}

// NewFileService creates a FileService on the given client.
func NewFileService(client *Client) *FileService {
	return &FileService{client: client}
}

// File is an uploaded file record.
type File struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	ExName    string `json:"ex_name"`
	CreatedAt string `json:"created_at"`
}

// FilePage is one page of the file listing.
type FilePage struct {
	Total int64  `json:"total"`
	List  []File `json:"list"`
}

// List retrieves one page of uploaded files.
func (s *FileService) List(ctx context.Context, pageNo, pageSize int) (*FilePage, error) {
	req := map[string]int{"page_no": pageNo, "page_size": pageSize}

	var data FilePage
	if _, err := s.client.Post(ctx, "/getFileList", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Upload sends a file as a multipart form. The upload endpoint is the one
// caller-side override of the JSON content type.
func (s *FileService) Upload(ctx context.Context, filename string, r io.Reader) (*File, error) {
	var data File
	if _, err := s.client.Upload(ctx, "/uploadFile", "file", filename, r, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Delete removes an uploaded file by ID.
func (s *FileService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/deleteFile", map[string]string{"id": id}, nil)
	return err
}

// ListByTaskRecord retrieves the files produced by one run record. The
// backend returns the list as the bare data payload.
func (s *FileService) ListByTaskRecord(ctx context.Context, recordID string) ([]File, error) {
	var files []File
	if _, err := s.client.Post(ctx, "/getFileListByTaskRecordID", map[string]string{"id": recordID}, &files); err != nil {
		return nil, err
	}
	return files, nil
}
