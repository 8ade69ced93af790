package api

import (
	"context"
	"encoding/json"
)

// MissionService wraps the backend's scheduled-task ("mission") endpoints.
type MissionService struct {
	client *Client
}

// NewMissionService creates a MissionService on the given client.
func NewMissionService(client *Client) *MissionService {
	return &MissionService{client: client}
}

// Mission status values as stored by the backend.
const (
	MissionStatusDraft      = 0
	MissionStatusScheduling = 1
	MissionStatusError      = 2
)

// MissionStage is one stage of a mission pipeline (source, sink, executor
// hooks). DataSource is nil for stages that don't bind one.
type MissionStage struct {
	Type       string     `json:"type"`
	DataSource *string    `json:"data_source,omitempty"`
	Params     []KeyValue `json:"params"`
}

// MissionProcessor is a transform stage; processors never bind a data
// source.
type MissionProcessor struct {
	Type   string     `json:"type"`
	Params []KeyValue `json:"params"`
}

// MissionData is the full pipeline definition of a mission.
type MissionData struct {
	BeforeExecute *MissionStage      `json:"before_execute"`
	Source        MissionStage       `json:"source"`
	Processors    []MissionProcessor `json:"processors"`
	Sink          MissionStage       `json:"sink"`
	AfterExecute  *MissionStage      `json:"after_execute"`
}

// Mission is a scheduled ETL task.
type Mission struct {
	ID              string       `json:"id"`
	Name            string       `json:"mission_name"`
	Cron            string       `json:"cron"`
	Data            *MissionData `json:"data"`
	Status          int          `json:"status"`
	LastRunTime     string       `json:"last_run_time"`
	LastSuccessTime string       `json:"last_success_time"`
	LastEndTime     string       `json:"last_end_time"`
	ErrMsg          string       `json:"err_msg"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

// SaveMissionRequest creates or (with ID set) updates a mission. Cron is
// either a standard cron expression or the literal "manual".
type SaveMissionRequest struct {
	ID     string      `json:"id,omitempty"`
	Name   string      `json:"mission_name"`
	Params MissionData `json:"params"`
	Cron   string      `json:"cron"`
}

// ComponentType describes a pipeline component type, optionally with the
// data sources it can bind.
type ComponentType struct {
	Type       string           `json:"type"`
	DataSource *[]DataSourceRef `json:"data_source,omitempty"`
	Params     []Param          `json:"params"`
}

// ComponentCatalogue lists the available component types per pipeline
// role.
type ComponentCatalogue struct {
	Executor  []ComponentType `json:"executor"`
	Source    []ComponentType `json:"source"`
	Processor []ComponentType `json:"processor"`
	Sink      []ComponentType `json:"sink"`
}

// All retrieves every mission. The backend returns the list as the bare
// data payload, not wrapped in a list object.
func (s *MissionService) All(ctx context.Context) ([]Mission, error) {
	env, err := s.client.Post(ctx, "/getTaskAll", nil, nil)
	if err != nil {
		return nil, err
	}

	var missions []Mission
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &missions); err != nil {
			return nil, &Error{Kind: KindTransport, Message: "failed to decode mission list: " + err.Error()}
		}
	}
	return missions, nil
}

// Add creates a new mission.
func (s *MissionService) Add(ctx context.Context, req SaveMissionRequest) error {
	_, err := s.client.Post(ctx, "/addTask", req, nil)
	return err
}

// Update edits an existing mission.
func (s *MissionService) Update(ctx context.Context, req SaveMissionRequest) error {
	_, err := s.client.Post(ctx, "/updateTask", req, nil)
	return err
}

// Delete removes a mission by ID. Scheduling missions cannot be deleted.
func (s *MissionService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/deleteTask", map[string]string{"id": id}, nil)
	return err
}

// Run places a mission into the scheduler.
func (s *MissionService) Run(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/runTask", map[string]string{"id": id}, nil)
	return err
}

// Stop removes a mission from the scheduler.
func (s *MissionService) Stop(ctx context.Context, id string) error {
	_, err := s.client.Post(ctx, "/stopTask", map[string]string{"id": id}, nil)
	return err
}

// RunOnce triggers a single manual execution.
func (s *MissionService) RunOnce(ctx context.Context, id string) (string, error) {
	env, err := s.client.Post(ctx, "/runTaskOnce", map[string]string{"id": id}, nil)
	if err != nil {
		return "", err
	}

	var message string
	if len(env.Data) > 0 {
		// data is a plain string on this endpoint
		_ = json.Unmarshal(env.Data, &message)
	}
	return message, nil
}

// TypeByComponent retrieves the component type catalogue used by the
// mission editor.
func (s *MissionService) TypeByComponent(ctx context.Context) (*ComponentCatalogue, error) {
	var data ComponentCatalogue
	if _, err := s.client.Post(ctx, "/getTypeByComponent", map[string]any{}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
