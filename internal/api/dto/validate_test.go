package dto

import (
	"encoding/json"
	"testing"

	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus != 400 || de.Message != MsgValidation {
		t.Fatalf("unexpected error %d %q", de.HTTPStatus, de.Message)
	}
	problems, _ := de.Details["errors"].([]string)
	return problems
}

func TestValidateLogin(t *testing.T) {
	if err := Validate(LoginRequest{User: "admin", Pass: "admin123"}); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}

	problems := problemsOf(t, Validate(LoginRequest{User: "ad", Pass: ""}))
	want := []string{"El nombre de usuario debe tener al menos 3 caracteres", "La contraseña es requerida"}
	if len(problems) != len(want) {
		t.Fatalf("expected %v, got %v", want, problems)
	}
	for i := range want {
		if problems[i] != want[i] {
			t.Fatalf("expected %q, got %q", want[i], problems[i])
		}
	}
}

func TestValidateOptionalPassword(t *testing.T) {
	empty, short, long := "", "abc", "abcdef"
	if err := Validate(UpdateUserRequest{Password: &empty}); err != nil {
		t.Fatalf("empty password should mean keep: %v", err)
	}
	if err := Validate(UpdateUserRequest{Password: &long}); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	problems := problemsOf(t, Validate(UpdateUserRequest{Password: &short}))
	if len(problems) != 1 || problems[0] != "La contraseña debe tener al menos 6 caracteres" {
		t.Fatalf("unexpected problems %v", problems)
	}
}

func TestValidateTaskStatus(t *testing.T) {
	problems := problemsOf(t, Validate(TaskStatusRequest{Status: "archivada"}))
	if len(problems) != 1 || problems[0] != msgTaskStatus {
		t.Fatalf("unexpected problems %v", problems)
	}
}

func TestUpdateTaskRequestPresence(t *testing.T) {
	cases := []struct {
		body           string
		wantDesc       bool
		wantAssignSet  bool
		wantAssignNull bool
		wantErr        bool
	}{
		{body: `{}`},
		{body: `{"description":"x"}`, wantDesc: true},
		{body: `{"assigned_to":null}`, wantAssignSet: true, wantAssignNull: true},
		{body: `{"assigned_to":"u1"}`, wantAssignSet: true},
		{body: `{"description":null}`, wantErr: true},
	}
	for _, tc := range cases {
		var req UpdateTaskRequest
		if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.body, err)
		}
		patch, err := req.ToPatch()
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.body)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.body, err)
		}
		if (patch.Description != nil) != tc.wantDesc {
			t.Fatalf("%s: description presence mismatch", tc.body)
		}
		if patch.AssignedToSet != tc.wantAssignSet {
			t.Fatalf("%s: assigned_to presence mismatch", tc.body)
		}
		if tc.wantAssignSet && (patch.AssignedTo == nil) != tc.wantAssignNull {
			t.Fatalf("%s: assigned_to null mismatch", tc.body)
		}
		if tc.body == `{}` && !patch.Empty() {
			t.Fatalf("empty body should give an empty patch")
		}
	}
}

func TestUpdateProjectRequestDates(t *testing.T) {
	var req UpdateProjectRequest
	if err := json.Unmarshal([]byte(`{"start_date":"2026-01-15","end_date":null,"budget":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch, err := req.ToPatch()
	if err != nil {
		t.Fatalf("to patch: %v", err)
	}
	if !patch.StartDateSet || patch.StartDate == nil || patch.StartDate.Day() != 15 {
		t.Fatalf("unexpected start date %+v", patch.StartDate)
	}
	if !patch.EndDateSet || patch.EndDate != nil {
		t.Fatalf("explicit null end date should clear it")
	}
	if !patch.BudgetSet || patch.Budget != nil {
		t.Fatalf("explicit null budget should clear it")
	}
	if patch.ResponsibleIDSet {
		t.Fatalf("absent responsible_id must not be set")
	}

	if err := json.Unmarshal([]byte(`{"start_date":"mañana"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := req.ToPatch(); err == nil {
		t.Fatalf("expected invalid date error")
	}
}
