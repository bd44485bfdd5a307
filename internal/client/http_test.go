package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetExercises(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/exercises" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("muscleGroup"); got != "chest" {
			t.Errorf("muscleGroup = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]Exercise{
			{ID: "bench-press", Name: "Bench Press", ExerciseType: ExerciseWeighted, PrimaryMuscleGroup: MuscleChest},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "tok")
	items, err := c.GetExercises("", MuscleChest)
	if err != nil {
		t.Fatalf("GetExercises() error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "bench-press" {
		t.Errorf("items = %+v", items)
	}
}

func TestGetExerciseEscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/exercises/Bench%20Press" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode(ExerciseExtended{Exercise: Exercise{Name: "Bench Press"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	got, err := c.GetExercise("Bench Press")
	if err != nil {
		t.Fatalf("GetExercise() error: %v", err)
	}
	if got.Name != "Bench Press" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestSaveScheduleSendsPut(t *testing.T) {
	var gotMethod string
	var gotBody Schedule
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	s := Schedule{Days: []ScheduleDay{{Nickname: "Push", ExerciseIDs: []string{"bench-press"}}}}
	if err := c.SaveSchedule(s); err != nil {
		t.Fatalf("SaveSchedule() error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q", gotMethod)
	}
	if len(gotBody.Days) != 1 || gotBody.Days[0].Nickname != "Push" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestGetHistoryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	if _, err := c.GetHistory(1); err == nil {
		t.Fatal("403 should surface as an error")
	}
}
