package api

import "context"

// RunLogService wraps the backend's run record endpoints.
type RunLogService struct {
	client *Client
}

// NewRunLogService creates a RunLogService on the given client.
func NewRunLogService(client *Client) *RunLogService {
	return &RunLogService{client: client}
}

// Run record status values as stored by the backend.
const (
	RecordStatusRunning = 0
	RecordStatusSuccess = 1
	RecordStatusFailed  = 2
	// RecordStatusAny disables status filtering in [RecordFilter].
	RecordStatusAny = -1
)

// RunRecord is one execution of a mission.
type RunRecord struct {
	ID        string   `json:"id"`
	RunBy     string   `json:"run_by"`
	TaskID    string   `json:"task_id"`
	Task      *Mission `json:"task"`
	Status    int      `json:"status"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Message   string   `json:"message"`
}

// RecordFilter narrows a run record listing. Zero values (and
// [RecordStatusAny] for Status) disable the respective filter.
type RecordFilter struct {
	MissionName string
	Status      int
	ID          string
}

// RecordPage is one page of the run record listing.
type RecordPage struct {
	Total int64       `json:"total"`
	List  []RunRecord `json:"list"`
}

type recordListRequest struct {
	PageNo      int    `json:"page_no"`
	PageSize    int    `json:"page_size"`
	MissionName string `json:"mission_name,omitempty"`
	Status      int    `json:"status"`
	ID          string `json:"id,omitempty"`
}

// Records retrieves one page of run records matching the filter.
func (s *RunLogService) Records(ctx context.Context, pageNo, pageSize int, filter RecordFilter) (*RecordPage, error) {
	req := recordListRequest{
		PageNo:      pageNo,
		PageSize:    pageSize,
		MissionName: filter.MissionName,
		Status:      filter.Status,
		ID:          filter.ID,
	}

	var data RecordPage
	if _, err := s.client.Post(ctx, "/getTaskRecordList", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Cancel forcibly terminates a running record. Returns the backend's
// status message.
func (s *RunLogService) Cancel(ctx context.Context, id string) (string, error) {
	env, err := s.client.Post(ctx, "/cancelTaskRecord", map[string]string{"id": id}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
