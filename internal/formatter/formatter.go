// package formatter provides functions to export run records and mission
// listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lttslabs/etlctl/internal/api"
	"github.com/lttslabs/etlctl/internal/shared"
)

// Supported output formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "text"
)

// RecordStatusString returns the display label for a run record status.
func RecordStatusString(status int) string {
	switch status {
	case api.RecordStatusRunning:
		return "Running"
	case api.RecordStatusSuccess:
		return "Success"
	case api.RecordStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// MissionStatusString returns the display label for a mission status.
func MissionStatusString(status int) string {
	switch status {
	case api.MissionStatusDraft:
		return "Draft"
	case api.MissionStatusScheduling:
		return "Scheduling"
	case api.MissionStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// recordMission resolves the mission name of a record, falling back to the
// task ID for records whose mission was deleted.
func recordMission(record api.RunRecord) string {
	if record.Task != nil && record.Task.Name != "" {
		return record.Task.Name
	}
	return record.TaskID
}

// RecordsToCSV converts run records to CSV with columns: ID, Mission,
// Status, Started, Ended, Message
func RecordsToCSV(records []api.RunRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Mission", "Status", "Started", "Ended", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			recordMission(record),
			RecordStatusString(record.Status),
			record.StartTime,
			record.EndTime,
			record.Message,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecordsToMarkdown converts run records to a Markdown table.
func RecordsToMarkdown(records []api.RunRecord, total int64) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Run Records\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", total))

	buf.WriteString("| ID | Mission | Status | Started | Ended | Message |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, record := range records {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			record.ID,
			recordMission(record),
			RecordStatusString(record.Status),
			record.StartTime,
			record.EndTime,
			record.Message,
		))
	}

	return buf.Bytes(), nil
}

// RecordsToText converts run records to plain text, one record per line.
func RecordsToText(records []api.RunRecord, total int64) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Run records: %d\n\n", total))
	for i, record := range records {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s", i+1, RecordStatusString(record.Status), recordMission(record), record.StartTime))
		if record.Message != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", record.Message))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// RenderRecords dispatches on format. Unknown formats are rejected with
// [shared.ErrInvalidFlag].
func RenderRecords(records []api.RunRecord, total int64, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return RecordsToCSV(records)
	case FormatMarkdown:
		return RecordsToMarkdown(records, total)
	case FormatText, "":
		return RecordsToText(records, total)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// MissionsToCSV converts missions to CSV with columns: ID, Name, Cron,
// Status, LastRun, LastSuccess, Error
func MissionsToCSV(missions []api.Mission) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Cron", "Status", "LastRun", "LastSuccess", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, mission := range missions {
		row := []string{
			mission.ID,
			mission.Name,
			mission.Cron,
			MissionStatusString(mission.Status),
			mission.LastRunTime,
			mission.LastSuccessTime,
			mission.ErrMsg,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MissionsToMarkdown converts missions to a Markdown table.
func MissionsToMarkdown(missions []api.Mission) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Missions\n\n")
	buf.WriteString("**Count**: " + strconv.Itoa(len(missions)) + "\n\n")

	buf.WriteString("| ID | Name | Cron | Status | Last Run |\n")
	buf.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, mission := range missions {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			mission.ID, mission.Name, mission.Cron, MissionStatusString(mission.Status), mission.LastRunTime))
	}

	return buf.Bytes(), nil
}

// MissionsToText converts missions to plain text, one mission per line.
func MissionsToText(missions []api.Mission) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Missions: %d\n\n", len(missions)))
	for i, mission := range missions {
		buf.WriteString(fmt.Sprintf("%d. %s [%s] cron=%s", i+1, mission.Name, MissionStatusString(mission.Status), mission.Cron))
		if mission.ErrMsg != "" {
			buf.WriteString(fmt.Sprintf(" error=%s", mission.ErrMsg))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// RenderMissions dispatches on format like [RenderRecords].
func RenderMissions(missions []api.Mission, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return MissionsToCSV(missions)
	case FormatMarkdown:
		return MissionsToMarkdown(missions)
	case FormatText, "":
		return MissionsToText(missions)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport writes rendered output to path, defaulting the filename from
// base and format when path is empty. Returns the path written.
func WriteExport(data []byte, path, base, format string) (string, error) {
	if path == "" {
		ext := "txt"
		switch format {
		case FormatCSV:
			ext = "csv"
		case FormatMarkdown:
			ext = "md"
		}
		path = fmt.Sprintf("%s.%s", base, ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
