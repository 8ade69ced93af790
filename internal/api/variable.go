package api

import "context"

// VariableService wraps the backend's system variable endpoints.
type VariableService struct {
	client *Client
}

// NewVariableService creates a VariableService on the given client.
func NewVariableService(client *Client) *VariableService {
	return &VariableService{client: client}
}

// VariableType is one entry of the variable type catalogue. DatasourceList
// is nil for types that don't bind a data source.
type VariableType struct {
	Type           string           `json:"type"`
	Params         []Param          `json:"params"`
	DatasourceList *[]DataSourceRef `json:"datasource_list"`
}

// Variable is a configured system variable.
type Variable struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Description  string         `json:"description"`
	DataSourceID *string        `json:"datasource_id"`
	DataSource   *DataSourceRef `json:"datasource"`
	Value        []KeyValue     `json:"value"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// SaveVariableRequest creates a variable, or edits one when Edit is "true"
// and ID is set.
type SaveVariableRequest struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	DataSourceID *string    `json:"datasource_id"`
	Description  string     `json:"description"`
	Value        []KeyValue `json:"value"`
	Edit         string     `json:"edit"`
}

// Types retrieves the catalogue of available variable types.
func (s *VariableService) Types(ctx context.Context) ([]VariableType, error) {
	var data struct {
		List []VariableType `json:"list"`
	}
	if _, err := s.client.Post(ctx, "/getVariableTypeList", nil, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}

// List retrieves all configured variables.
func (s *VariableService) List(ctx context.Context) ([]Variable, error) {
	var data struct {
		List []Variable `json:"list"`
	}
	if _, err := s.client.Post(ctx, "/getVariableList", nil, &data); err != nil {
		return nil, err
	}
	return data.List, nil
}

// Save creates or edits a variable.
func (s *VariableService) Save(ctx context.Context, req SaveVariableRequest) error {
	_, err := s.client.Post(ctx, "/newVariable", req, nil)
	return err
}

// Delete removes a variable by ID.
func (s *VariableService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/deleteVariable", map[string]string{"id": id}, nil)
	return err
}

// Test evaluates a variable against its backing source and returns the
// resolved value.
func (s *VariableService) Test(ctx context.Context, id string) (string, error) {
	var data struct {
		Result string `json:"result"`
	}
	if _, err := s.client.Post(ctx, "/testVariable", map[string]string{"id": id}, &data); err != nil {
		return "", err
	}
	return data.Result, nil
}
