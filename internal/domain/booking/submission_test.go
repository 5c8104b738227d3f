package booking

import (
	"encoding/json"
	"testing"
)

func appointmentInfo() AppointmentInfo {
	return AppointmentInfo{
		AvailableAppointmentSlotID: 7,
		HoursToConsume:             1.5,
		AmountPaid:                 25,
		PermitNumber:               "P-123",
		LearnerPermitIssueDate:     "2024-01-15",
		PermitExpirationDate:       "2026-01-15",
		DrivingExperience:          "none",
	}
}

func TestSubmission_AuthenticatedShape(t *testing.T) {
	raw, err := json.Marshal(Authenticated(appointmentInfo()))
	if err != nil {
		t.Fatal(err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatal(err)
	}

	if _, ok := payload["appointment_info"]; !ok {
		t.Fatal("appointment_info missing")
	}
	if _, ok := payload["user_info"]; ok {
		t.Fatal("authenticated submission must not carry a user_info key")
	}
}

func TestSubmission_GuestShape(t *testing.T) {
	sub := Guest(appointmentInfo(), UserRegistrationInfo{
		FullName: "Jamie Doe",
		Email:    "jamie@example.com",
		Password: "secret1",
		Phone:    "555-0101",
	})

	if !sub.IsGuest() {
		t.Fatal("expected guest submission")
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		t.Fatal(err)
	}

	var payload struct {
		UserInfo map[string]any `json:"user_info"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatal(err)
	}

	want := []string{"full_name", "email", "password", "phone"}
	if len(payload.UserInfo) != len(want) {
		t.Fatalf("user_info has %d keys, want %d: %v", len(payload.UserInfo), len(want), payload.UserInfo)
	}
	for _, key := range want {
		if _, ok := payload.UserInfo[key]; !ok {
			t.Fatalf("user_info missing %q", key)
		}
	}
}
