package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/formatter"
)

var (
	_ list.Item = dataSourceItem{}
	_ list.Item = variableItem{}
	_ list.Item = missionItem{}
	_ list.Item = recordItem{}
	_ list.Item = fileItem{}
)

// dataSourceItem wraps [api.DataSource] to implement [list.Item].
type dataSourceItem struct {
	source api.DataSource
}

func (i dataSourceItem) FilterValue() string { return i.source.Name }
func (i dataSourceItem) Title() string       { return i.source.Name }
func (i dataSourceItem) Description() string {
	desc := i.source.Type
	if i.source.UpdatedAt != "" {
		desc = fmt.Sprintf("%s • updated %s", desc, i.source.UpdatedAt)
	}
	return desc
}

// variableItem wraps [api.Variable] to implement [list.Item].
type variableItem struct {
	variable api.Variable
}

func (i variableItem) FilterValue() string { return i.variable.Name }
func (i variableItem) Title() string       { return i.variable.Name }
func (i variableItem) Description() string {
	desc := i.variable.Type
	if i.variable.DataSource != nil {
		desc = fmt.Sprintf("%s • %s", desc, i.variable.DataSource.Name)
	}
	if i.variable.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.variable.Description)
	}
	return desc
}

// missionItem wraps [api.Mission] to implement [list.Item].
type missionItem struct {
	mission api.Mission
}

func (i missionItem) FilterValue() string { return i.mission.Name }
func (i missionItem) Title() string       { return i.mission.Name }
func (i missionItem) Description() string {
	desc := fmt.Sprintf("%s • cron %s", formatter.MissionStatusString(i.mission.Status), i.mission.Cron)
	if i.mission.ErrMsg != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.mission.ErrMsg)
	}
	return desc
}

// recordItem wraps [api.RunRecord] to implement [list.Item].
type recordItem struct {
	record api.RunRecord
}

func (i recordItem) FilterValue() string {
	if i.record.Task != nil {
		return i.record.Task.Name
	}
	return i.record.TaskID
}

func (i recordItem) Title() string {
	name := i.record.TaskID
	if i.record.Task != nil && i.record.Task.Name != "" {
		name = i.record.Task.Name
	}
	return fmt.Sprintf("%s [%s]", name, formatter.RecordStatusString(i.record.Status))
}

func (i recordItem) Description() string {
	desc := i.record.StartTime
	if i.record.Message != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.record.Message)
	}
	return desc
}

// fileItem wraps [api.File] to implement [list.Item].
type fileItem struct {
	file api.File
}

func (i fileItem) FilterValue() string { return i.file.Name }
func (i fileItem) Title() string       { return i.file.Name }
func (i fileItem) Description() string {
	return fmt.Sprintf("%s • %d bytes • %s", i.file.ExName, i.file.Size, i.file.CreatedAt)
}
