package api

import "context"

// DataSourceService wraps the backend's data source endpoints.
type DataSourceService struct {
	client *Client
}

// NewDataSourceService creates a DataSourceService on the given client.
func NewDataSourceService(client *Client) *DataSourceService {
	return &DataSourceService{client: client}
}

// DataSourceType is one entry of the type catalogue: a connector type and
// the parameters it requires.
type DataSourceType struct {
	Type   string  `json:"type"`
	Params []Param `json:"params"`
}

// DataSource is a configured connection to an external system.
type DataSource struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Data      []KeyValue `json:"data"`
	UpdatedAt string     `json:"updated_at"`
	CreatedAt string     `json:"created_at"`
}

// SaveDataSourceRequest creates a data source, or edits one when Edit is
// "true" and ID is set. Edit is a string by backend convention.
type SaveDataSourceRequest struct {
	ID   string     `json:"id,omitempty"`
	Name string     `json:"name"`
	Type string     `json:"type"`
	Data []KeyValue `json:"data"`
	Edit string     `json:"edit"`
}

// Types retrieves the catalogue of available data source types.
func (s *DataSourceService) Types(ctx context.Context) ([]DataSourceType, error) {
	var data struct {
		List []DataSourceType `json:"list"`
	}
	if _, err := s.client.Post(ctx, "/getDataSourceTypeList", nil, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}

// List retrieves all configured data sources.
func (s *DataSourceService) List(ctx context.Context) ([]DataSource, error) {
	var data struct {
		List []DataSource `json:"list"`
	}
	if _, err := s.client.Post(ctx, "/getDataSourceList", nil, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}

// Save creates or edits a data source.
func (s *DataSourceService) Save(ctx context.Context, req SaveDataSourceRequest) error {
	_, err := s.client.Post(ctx, "/newDataSource", req, nil)
	return err
}

// Delete removes a data source by ID.
func (s *DataSourceService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/deleteDataSource", map[string]string{"id": id}, nil)
	return err
}
