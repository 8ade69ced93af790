package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lttslabs/etlctl/internal/session"
)

// requestLog records the last request body seen per path.
type requestLog struct {
	mu     sync.Mutex
	bodies map[string][]byte
}

func (l *requestLog) record(path string, body []byte) {
	l.mu.Lock()
	l.bodies[path] = body
	l.mu.Unlock()
}

func (l *requestLog) decode(t *testing.T, path string, out any) {
	t.Helper()
	l.mu.Lock()
	body := l.bodies[path]
	l.mu.Unlock()

	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("failed to decode request to %s: %v", path, err)
	}
}

// newFakeBackend starts a backend that answers each path with a canned
// envelope and records the request bodies it receives.
func newFakeBackend(t *testing.T, responses map[string]string) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{bodies: make(map[string][]byte)}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		log.record(r.URL.Path, body)

		resp, ok := responses[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(resp))
	}))
	t.Cleanup(server.Close)

	return server, log
}

func TestAuthService(t *testing.T) {
	t.Run("Plain Login", func(t *testing.T) {
		server, bodies := newFakeBackend(t, map[string]string{
			"/login": `{"code":200,"message":"welcome","data":{"token":"tok-123"}}`,
		})

		svc := NewAuthService(NewClient(server.URL, &fakeSession{}, Options{}))
		res, err := svc.Login(context.Background(), session.Credentials{Username: "admin", Password: "pw"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if res.Token != "tok-123" {
			t.Errorf("expected token tok-123, got %q", res.Token)
		}
		if res.Message != "welcome" {
			t.Errorf("expected the backend message, got %q", res.Message)
		}

		var req map[string]string
		bodies.decode(t, "/login", &req)
		if req["username"] != "admin" || req["password"] != "pw" {
			t.Errorf("unexpected login request: %v", req)
		}
		if _, ok := req["code"]; ok {
			t.Error("plain login must not send a verification code")
		}
	})

	t.Run("Login With Verification Code", func(t *testing.T) {
		server, bodies := newFakeBackend(t, map[string]string{
			"/loginWithCode": `{"code":200,"message":"","data":{"token":"tok-456"}}`,
		})

		svc := NewAuthService(NewClient(server.URL, &fakeSession{}, Options{}))
		res, err := svc.Login(context.Background(), session.Credentials{Username: "admin", Password: "pw", Code: "9871"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != "tok-456" {
			t.Errorf("expected token tok-456, got %q", res.Token)
		}

		var req map[string]string
		bodies.decode(t, "/loginWithCode", &req)
		if req["code"] != "9871" {
			t.Errorf("expected the verification code in the request, got %v", req)
		}
	})

	t.Run("Failed Login Surfaces Business Error", func(t *testing.T) {
		server, _ := newFakeBackend(t, map[string]string{
			"/login": `{"code":1,"message":"bad credentials","data":null}`,
		})

		svc := NewAuthService(NewClient(server.URL, &fakeSession{}, Options{}))
		if _, err := svc.Login(context.Background(), session.Credentials{Username: "admin", Password: "no"}); err == nil || err.Error() != "bad credentials" {
			t.Errorf("expected the backend's rejection, got %v", err)
		}
	})
}

func TestDataSourceService(t *testing.T) {
	server, bodies := newFakeBackend(t, map[string]string{
		"/getDataSourceTypeList": `{"code":200,"message":"","data":{"list":[{"type":"postgresql","params":[{"key":"host","required":true}]}]}}`,
		"/getDataSourceList":     `{"code":200,"message":"","data":{"list":[{"id":"ds1","name":"pg-main","type":"postgresql"}]}}`,
		"/newDataSource":         `{"code":200,"message":"saved","data":null}`,
		"/deleteDataSource":      `{"code":200,"message":"deleted","data":null}`,
	})
	svc := NewDataSourceService(NewClient(server.URL, &fakeSession{token: "t"}, Options{}))
	ctx := context.Background()

	t.Run("Types", func(t *testing.T) {
		types, err := svc.Types(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(types) != 1 || types[0].Type != "postgresql" || !types[0].Params[0].Required {
			t.Errorf("unexpected catalogue: %+v", types)
		}
	})

	t.Run("List", func(t *testing.T) {
		sources, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 1 || sources[0].Name != "pg-main" {
			t.Errorf("unexpected listing: %+v", sources)
		}
	})

	t.Run("Save Edit Flag Is A String", func(t *testing.T) {
		err := svc.Save(ctx, SaveDataSourceRequest{
			ID:   "ds1",
			Name: "pg-main",
			Type: "postgresql",
			Data: []KeyValue{{Key: "host", Value: "db.internal"}},
			Edit: "true",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var req map[string]any
		bodies.decode(t, "/newDataSource", &req)
		if req["edit"] != "true" {
			t.Errorf("expected edit flag as string true, got %v", req["edit"])
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.Delete(ctx, "ds1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMissionService(t *testing.T) {
	server, bodies := newFakeBackend(t, map[string]string{
		"/getTaskAll":         `{"code":200,"message":"","data":[{"id":"m1","mission_name":"nightly-sync","cron":"0 2 * * *","status":1}]}`,
		"/addTask":            `{"code":200,"message":"created","data":null}`,
		"/runTaskOnce":        `{"code":200,"message":"","data":"record-42"}`,
		"/getTypeByComponent": `{"code":200,"message":"","data":{"executor":[],"source":[{"type":"postgresql","params":[]}],"processor":[],"sink":[]}}`,
	})
	svc := NewMissionService(NewClient(server.URL, &fakeSession{token: "t"}, Options{}))
	ctx := context.Background()

	t.Run("All Decodes Bare Array Payload", func(t *testing.T) {
		missions, err := svc.All(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(missions) != 1 {
			t.Fatalf("expected one mission, got %d", len(missions))
		}
		if missions[0].Name != "nightly-sync" || missions[0].Status != MissionStatusScheduling {
			t.Errorf("unexpected mission: %+v", missions[0])
		}
	})

	t.Run("Add Sends Pipeline Under Params", func(t *testing.T) {
		err := svc.Add(ctx, SaveMissionRequest{
			Name: "nightly-sync",
			Cron: "0 2 * * *",
			Params: MissionData{
				Source: MissionStage{Type: "postgresql"},
				Sink:   MissionStage{Type: "csv"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var req map[string]any
		bodies.decode(t, "/addTask", &req)
		if req["mission_name"] != "nightly-sync" {
			t.Errorf("expected mission_name field, got %v", req)
		}
		if _, ok := req["params"]; !ok {
			t.Error("expected the pipeline under params")
		}
	})

	t.Run("RunOnce Returns Record Reference", func(t *testing.T) {
		ref, err := svc.RunOnce(ctx, "m1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ref != "record-42" {
			t.Errorf("expected record-42, got %q", ref)
		}
	})

	t.Run("Component Catalogue", func(t *testing.T) {
		cat, err := svc.TypeByComponent(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cat.Source) != 1 || cat.Source[0].Type != "postgresql" {
			t.Errorf("unexpected catalogue: %+v", cat)
		}
	})
}

func TestVariableService(t *testing.T) {
	server, bodies := newFakeBackend(t, map[string]string{
		"/getVariableList": `{"code":200,"message":"","data":{"list":[{"id":"v1","name":"batch_date","type":"sql"}]}}`,
		"/newVariable":     `{"code":200,"message":"saved","data":null}`,
		"/testVariable":    `{"code":200,"message":"","data":{"result":"2026-08-30"}}`,
	})
	svc := NewVariableService(NewClient(server.URL, &fakeSession{token: "t"}, Options{}))
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		vars, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vars) != 1 || vars[0].Name != "batch_date" {
			t.Errorf("unexpected listing: %+v", vars)
		}
	})

	t.Run("Save Carries DataSource Binding", func(t *testing.T) {
		dsID := "ds1"
		err := svc.Save(ctx, SaveVariableRequest{
			Name:         "batch_date",
			Type:         "sql",
			DataSourceID: &dsID,
			Value:        []KeyValue{{Key: "sql", Value: "select current_date"}},
			Edit:         "false",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var req map[string]any
		bodies.decode(t, "/newVariable", &req)
		if req["datasource_id"] != "ds1" {
			t.Errorf("expected datasource binding, got %v", req)
		}
	})

	t.Run("Test Returns Resolved Value", func(t *testing.T) {
		result, err := svc.Test(ctx, "v1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "2026-08-30" {
			t.Errorf("expected resolved value, got %q", result)
		}
	})
}

func TestFileService(t *testing.T) {
	server, bodies := newFakeBackend(t, map[string]string{
		"/getFileList":               `{"code":200,"message":"","data":{"total":12,"list":[{"id":"f1","name":"rows.csv","size":128,"ex_name":"csv"}]}}`,
		"/deleteFile":                `{"code":200,"message":"deleted","data":null}`,
		"/getFileListByTaskRecordID": `{"code":200,"message":"","data":[{"id":"f2","name":"out.csv","size":64,"ex_name":"csv"}]}`,
	})
	svc := NewFileService(NewClient(server.URL, &fakeSession{token: "t"}, Options{}))
	ctx := context.Background()

	t.Run("List Is Paginated", func(t *testing.T) {
		page, err := svc.List(ctx, 2, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 12 || len(page.List) != 1 {
			t.Errorf("unexpected page: %+v", page)
		}

		var req map[string]int
		bodies.decode(t, "/getFileList", &req)
		if req["page_no"] != 2 || req["page_size"] != 10 {
			t.Errorf("unexpected paging request: %v", req)
		}
	})

	t.Run("ListByTaskRecord Decodes Bare Array Payload", func(t *testing.T) {
		files, err := svc.ListByTaskRecord(ctx, "record-42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].Name != "out.csv" {
			t.Errorf("unexpected listing: %+v", files)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.Delete(ctx, "f1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRunLogService(t *testing.T) {
	server, bodies := newFakeBackend(t, map[string]string{
		"/getTaskRecordList": `{"code":200,"message":"","data":{"total":3,"list":[{"id":"r1","task_id":"m1","status":2,"message":"sink unreachable"}]}}`,
		"/cancelTaskRecord":  `{"code":200,"message":"cancel requested","data":null}`,
	})
	svc := NewRunLogService(NewClient(server.URL, &fakeSession{token: "t"}, Options{}))
	ctx := context.Background()

	t.Run("Records With Filter", func(t *testing.T) {
		page, err := svc.Records(ctx, 1, 20, RecordFilter{MissionName: "nightly", Status: RecordStatusFailed})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 3 || page.List[0].Status != RecordStatusFailed {
			t.Errorf("unexpected page: %+v", page)
		}

		var req map[string]any
		bodies.decode(t, "/getTaskRecordList", &req)
		if req["mission_name"] != "nightly" || req["status"] != float64(RecordStatusFailed) {
			t.Errorf("unexpected filter request: %v", req)
		}
	})

	t.Run("Unfiltered Status Is Minus One", func(t *testing.T) {
		if _, err := svc.Records(ctx, 1, 20, RecordFilter{Status: RecordStatusAny}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var req map[string]any
		bodies.decode(t, "/getTaskRecordList", &req)
		if req["status"] != float64(RecordStatusAny) {
			t.Errorf("expected status -1 to pass through, got %v", req["status"])
		}
	})

	t.Run("Cancel Returns Status Message", func(t *testing.T) {
		msg, err := svc.Cancel(ctx, "r1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msg != "cancel requested" {
			t.Errorf("expected the backend message, got %q", msg)
		}
	})
}
