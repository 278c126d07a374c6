package dto

import (
	"reflect"
	"testing"

	"github.com/spec-kit/project-tracker/internal/domain"
)

func TestDecodeCommand(t *testing.T) {
	score := 4
	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{
			name: "report ticket",
			raw: `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
				"params":{"type":"UI_FEEDBACK","title":"font","businessPriority":"LOW","reportedBy":"rita","businessValue":"S","usabilityScore":4}}`,
			want: Command{Kind: KindReportTicket, Username: "rita", Timestamp: "2025-10-01", Payload: ReportTicketPayload{
				Params: ReportTicketParams{
					Type: domain.TicketTypeUIFeedback, Title: "font", BusinessPriority: domain.PriorityLow,
					ReportedBy: "rita", BusinessValue: domain.BusinessValueS, UsabilityScore: &score,
				},
			}},
		},
		{
			name: "comment",
			raw:  `{"command":"addComment","username":"sam","timestamp":"2025-10-02","ticketID":3,"comment":"hello there"}`,
			want: Command{Kind: KindAddComment, Username: "sam", Timestamp: "2025-10-02",
				Payload: CommentPayload{TicketID: 3, Comment: "hello there"}},
		},
		{
			name: "milestone",
			raw: `{"command":"createMilestone","username":"mona","timestamp":"2025-10-13","name":"M1",
				"dueDate":"2025-11-01","blockingFor":["M2"],"tickets":[0,1],"assignedDevs":["alice"]}`,
			want: Command{Kind: KindCreateMilestone, Username: "mona", Timestamp: "2025-10-13", Payload: CreateMilestonePayload{
				Name: "M1", DueDate: "2025-11-01", BlockingFor: []string{"M2"}, Tickets: []int{0, 1}, AssignedDevs: []string{"alice"},
			}},
		},
		{
			name: "no payload",
			raw:  `{"command":"viewTickets","username":"mona","timestamp":"2025-10-13"}`,
			want: Command{Kind: KindViewTickets, Username: "mona", Timestamp: "2025-10-13"},
		},
		{
			name: "unknown kind",
			raw:  `{"command":"dance","username":"mona","timestamp":"2025-10-13","ticketID":1}`,
			want: Command{Kind: "dance", Username: "mona", Timestamp: "2025-10-13"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand([]byte(tt.raw))
			if err != nil {
				t.Fatalf("DecodeCommand() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DecodeCommand() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeCommandKeepsBadPayload(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"command":"assignTicket","username":"a","timestamp":"t","ticketID":"x"}`))
	if err != nil {
		t.Fatalf("DecodeCommand() error = %v", err)
	}
	if cmd.Kind != KindAssignTicket || cmd.Username != "a" || cmd.Payload != nil || cmd.PayloadErr == nil {
		t.Fatalf("DecodeCommand() = %+v, want header kept and PayloadErr set", cmd)
	}
	if _, err := DecodeCommand([]byte(`[1]`)); err == nil {
		t.Fatal("expected error for non-object record")
	}
}

func TestPayloadAs(t *testing.T) {
	cmd := Command{Kind: KindChangeStatus, Payload: TicketPayload{TicketID: 7}}
	p, err := PayloadAs[TicketPayload](cmd)
	if err != nil || p.TicketID != 7 {
		t.Fatalf("PayloadAs() = %+v, %v", p, err)
	}
	if _, err := PayloadAs[CommentPayload](cmd); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestResultMarshalOrder(t *testing.T) {
	cmd := Command{Kind: KindViewNotifications, Username: "alice", Timestamp: "2025-10-20"}
	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "error",
			result: ErrorResult(cmd, "The user alice does not exist."),
			want:   `{"command":"viewNotifications","username":"alice","timestamp":"2025-10-20","error":"The user alice does not exist."}`,
		},
		{
			name:   "body",
			result: BodyResult(cmd, NotificationsBody{Notifications: []string{"a & b <c>"}}),
			want:   `{"command":"viewNotifications","username":"alice","timestamp":"2025-10-20","notifications":["a & b <c>"]}`,
		},
		{
			name:   "empty body",
			result: BodyResult(cmd, struct{}{}),
			want:   `{"command":"viewNotifications","username":"alice","timestamp":"2025-10-20"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.result)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Fatalf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResultRejectsNonObjectBody(t *testing.T) {
	if _, err := Marshal(BodyResult(Command{Kind: KindSearch}, []int{1})); err == nil {
		t.Fatal("expected error for array body")
	}
}

func TestDecimal(t *testing.T) {
	tests := map[float64]string{15: "15.0", 51.96: "51.96", 0: "0.0", 2.5: "2.5"}
	for in, want := range tests {
		got, err := Decimal(in).MarshalJSON()
		if err != nil || string(got) != want {
			t.Errorf("Decimal(%v) = %s, %v; want %s", in, got, err, want)
		}
	}
}

func TestUserRecordToUser(t *testing.T) {
	dev, err := UserRecord{Username: "alice", Role: "DEVELOPER", ExpertiseArea: "BACKEND", Seniority: "MID", HireDate: "2020-01-01"}.ToUser()
	if err != nil {
		t.Fatal(err)
	}
	profile, ok := dev.Developer()
	if !ok || profile.Seniority != domain.SeniorityMid || profile.Expertise != domain.ExpertiseBackend {
		t.Fatalf("developer profile = %+v", profile)
	}

	dev, _ = UserRecord{Username: "bob", Role: "DEVELOPER", SeniorityLevel: "SENIOR", Seniority: "JUNIOR"}.ToUser()
	if profile, _ := dev.Developer(); profile.Seniority != domain.SenioritySenior {
		t.Fatalf("seniorityLevel should win, got %s", profile.Seniority)
	}

	mgr, _ := UserRecord{Username: "mona", Role: "MANAGER", Subordinates: []string{"alice"}}.ToUser()
	if m, ok := mgr.Manager(); !ok || !reflect.DeepEqual(m.Subordinates, []string{"alice"}) {
		t.Fatalf("manager profile = %+v", m)
	}

	if _, err := (UserRecord{Username: "x", Role: "ADMIN"}).ToUser(); err == nil {
		t.Fatal("expected unknown role error")
	}
}
