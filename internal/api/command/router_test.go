package command

import (
	"context"
	"strings"
	"testing"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/auth"
	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/observability"
	"github.com/spec-kit/project-tracker/internal/repository"
	"github.com/spec-kit/project-tracker/internal/service"
)

type harness struct {
	router  *Router
	metrics *observability.Metrics
	svc     *service.Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := repository.NewStore(12)
	for _, u := range []*domain.User{
		domain.NewUser("rita", "rita@example.com", domain.ReporterProfile{}),
		domain.NewUser("alice", "alice@example.com", &domain.DeveloperProfile{
			Expertise: domain.ExpertiseBackend, Seniority: domain.SeniorityMid, HireDate: "2023-01-10",
		}),
		domain.NewUser("bob", "bob@example.com", &domain.DeveloperProfile{
			Expertise: domain.ExpertiseFrontend, Seniority: domain.SeniorityJunior, HireDate: "2024-05-02",
		}),
		domain.NewUser("mona", "mona@example.com", &domain.ManagerProfile{Subordinates: []string{"alice", "bob"}}),
	} {
		if err := store.Users.Create(u); err != nil {
			t.Fatal(err)
		}
	}
	svc := service.New(store, service.Options{})
	svc.Notifications.RegisterHandlers()

	metrics := observability.NewMetrics()
	router := NewRouter(auth.NewResolver(store.Users))
	RegisterMiddlewares(router, nil, metrics)
	RegisterRoutes(router, NewRouteConfig(svc))
	return &harness{router: router, metrics: metrics, svc: svc}
}

func (h *harness) run(t *testing.T, raw string) *dto.Result {
	t.Helper()
	cmd, err := dto.DecodeCommand([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeCommand(%s) error = %v", raw, err)
	}
	return h.router.Dispatch(context.Background(), cmd)
}

func (h *harness) runJSON(t *testing.T, raw string) string {
	t.Helper()
	result := h.run(t, raw)
	if result == nil {
		t.Fatalf("no result for %s", raw)
	}
	out, err := dto.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func (h *harness) runSilent(t *testing.T, raw string) {
	t.Helper()
	if result := h.run(t, raw); result != nil {
		t.Fatalf("unexpected result %+v for %s", result, raw)
	}
}

func TestDispatchAuthorization(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "unknown user before unknown command",
			raw:  `{"command":"dance","username":"ghost","timestamp":"2025-10-01"}`,
			want: `{"command":"dance","username":"ghost","timestamp":"2025-10-01","error":"The user ghost does not exist."}`,
		},
		{
			name: "forbidden single role",
			raw:  `{"command":"createMilestone","username":"rita","timestamp":"2025-10-01","name":"M"}`,
			want: `{"command":"createMilestone","username":"rita","timestamp":"2025-10-01","error":"The user does not have permission to execute this command: required role MANAGER; user role REPORTER."}`,
		},
		{
			name: "forbidden role list keeps order",
			raw:  `{"command":"viewMilestones","username":"rita","timestamp":"2025-10-01"}`,
			want: `{"command":"viewMilestones","username":"rita","timestamp":"2025-10-01","error":"The user does not have permission to execute this command: required role MANAGER, DEVELOPER; user role REPORTER."}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.runJSON(t, tt.raw); got != tt.want {
				t.Fatalf("got  %s\nwant %s", got, tt.want)
			}
		})
	}

	h.runSilent(t, `{"command":"dance","username":"mona","timestamp":"2025-10-01"}`)
}

func TestReportAndViewTickets(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
		"params":{"type":"BUG","title":"crash & burn","businessPriority":"HIGH","reportedBy":"rita","frequency":"RARE","severity":"MINOR"}}`)
	h.runSilent(t, `{"command":"addComment","username":"rita","timestamp":"2025-10-02","ticketID":0,"comment":"still broken today"}`)

	got := h.runJSON(t, `{"command":"viewTickets","username":"mona","timestamp":"2025-10-02"}`)
	want := `{"command":"viewTickets","username":"mona","timestamp":"2025-10-02","tickets":[` +
		`{"id":0,"type":"BUG","title":"crash & burn","businessPriority":"HIGH","status":"OPEN","createdAt":"2025-10-01",` +
		`"assignedAt":"","solvedAt":"","assignedTo":"","reportedBy":"rita",` +
		`"comments":[{"author":"rita","content":"still broken today","createdAt":"2025-10-02"}]}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	got = h.runJSON(t, `{"command":"generateCustomerImpactReport","username":"mona","timestamp":"2025-10-03"}`)
	want = `{"command":"generateCustomerImpactReport","username":"mona","timestamp":"2025-10-03","report":{` +
		`"totalTickets":1,"ticketsByType":{"BUG":1,"FEATURE_REQUEST":0,"UI_FEEDBACK":0},` +
		`"ticketsByPriority":{"LOW":0,"MEDIUM":0,"HIGH":1,"CRITICAL":0},` +
		`"customerImpactByType":{"BUG":9.24,"FEATURE_REQUEST":0.0,"UI_FEEDBACK":0.0}}}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestAnonymousReportErrorResult(t *testing.T) {
	h := newHarness(t)
	got := h.runJSON(t, `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
		"params":{"type":"FEATURE_REQUEST","title":"x","businessPriority":"LOW","reportedBy":""}}`)
	want := `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01","error":"Anonymous reports are only allowed for tickets of type BUG."}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestMilestoneFlowThroughRouter(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
		"params":{"type":"BUG","title":"db timeout","businessPriority":"MEDIUM","reportedBy":"rita","expertiseArea":"DB"}}`)

	got := h.runJSON(t, `{"command":"createMilestone","username":"mona","timestamp":"2025-10-05","name":"M1",
		"dueDate":"2025-10-30","blockingFor":[],"tickets":[0],"assignedDevs":["alice"]}`)
	want := `{"command":"createMilestone","username":"mona","timestamp":"2025-10-05","error":"Milestones can only be created during development phases."}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	h.runSilent(t, `{"command":"createMilestone","username":"mona","timestamp":"2025-10-13","name":"M1",
		"dueDate":"2025-10-30","blockingFor":[],"tickets":[0],"assignedDevs":["alice"]}`)
	h.runSilent(t, `{"command":"assignTicket","username":"alice","timestamp":"2025-10-14","ticketID":0}`)

	got = h.runJSON(t, `{"command":"viewNotifications","username":"alice","timestamp":"2025-10-14"}`)
	want = `{"command":"viewNotifications","username":"alice","timestamp":"2025-10-14",` +
		`"notifications":["New milestone M1 has been created with due date 2025-10-30."]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	got = h.runJSON(t, `{"command":"viewMilestones","username":"mona","timestamp":"2025-10-14"}`)
	want = `{"command":"viewMilestones","username":"mona","timestamp":"2025-10-14","milestones":[{` +
		`"name":"M1","blockingFor":[],"dueDate":"2025-10-30","createdAt":"2025-10-13","tickets":[0],` +
		`"assignedDevs":["alice"],"createdBy":"mona","status":"ACTIVE","isBlocked":false,` +
		`"daysUntilDue":17,"overdueBy":0,"openTickets":[0],"closedTickets":[],"completionPercentage":0.0,` +
		`"repartition":[{"developer":"alice","assignedTickets":[0]}]}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	got = h.runJSON(t, `{"command":"viewTicketHistory","username":"alice","timestamp":"2025-10-15"}`)
	want = `{"command":"viewTicketHistory","username":"alice","timestamp":"2025-10-15","ticketHistory":[{` +
		`"id":0,"title":"db timeout","status":"IN_PROGRESS","actions":[` +
		`{"milestone":"M1","by":"mona","timestamp":"2025-10-13","action":"ADDED_TO_MILESTONE"},` +
		`{"by":"alice","timestamp":"2025-10-14","action":"ASSIGNED"},` +
		`{"from":"OPEN","to":"IN_PROGRESS","by":"alice","timestamp":"2025-10-14","action":"STATUS_CHANGED"}],` +
		`"comments":[]}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	// Status commands on a missing ticket are silent.
	h.runSilent(t, `{"command":"changeStatus","username":"alice","timestamp":"2025-10-15","ticketID":42}`)
	h.runSilent(t, `{"command":"undoAddComment","username":"alice","timestamp":"2025-10-15","ticketID":42}`)

	got = h.runJSON(t, `{"command":"changeStatus","username":"bob","timestamp":"2025-10-15","ticketID":0}`)
	want = `{"command":"changeStatus","username":"bob","timestamp":"2025-10-15","error":"Ticket 0 is not assigned to developer bob."}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestSearchResults(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
		"params":{"type":"BUG","title":"Login button broken","businessPriority":"LOW","reportedBy":"rita"}}`)

	got := h.runJSON(t, `{"command":"search","username":"rita","timestamp":"2025-10-02",
		"filters":{"searchType":"TICKET","keywords":["login","logout"]}}`)
	want := `{"command":"search","username":"rita","timestamp":"2025-10-02","searchType":"TICKET","results":[` +
		`{"id":0,"type":"BUG","title":"Login button broken","businessPriority":"LOW","status":"OPEN",` +
		`"createdAt":"2025-10-01","solvedAt":"","reportedBy":"rita","matchingWords":["login"]}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	got = h.runJSON(t, `{"command":"search","username":"mona","timestamp":"2025-10-02",
		"filters":{"searchType":"DEVELOPER","seniority":"JUNIOR"}}`)
	want = `{"command":"search","username":"mona","timestamp":"2025-10-02","searchType":"DEVELOPER","results":[` +
		`{"username":"bob","expertiseArea":"FRONTEND","seniority":"JUNIOR","performanceScore":0.0,"hireDate":"2024-05-02"}]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	got = h.runJSON(t, `{"command":"search","username":"mona","timestamp":"2025-10-02","filters":{"searchType":"TEAM"}}`)
	want = `{"command":"search","username":"mona","timestamp":"2025-10-02","searchType":"TEAM","results":[]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestUndoAssignLeavesClosedTicketAlone(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"reportTicket","username":"rita","timestamp":"2025-10-01",
		"params":{"type":"BUG","title":"db timeout","businessPriority":"MEDIUM","reportedBy":"rita","expertiseArea":"DB"}}`)
	h.runSilent(t, `{"command":"createMilestone","username":"mona","timestamp":"2025-10-13","name":"M1",
		"dueDate":"2025-11-30","blockingFor":[],"tickets":[0],"assignedDevs":["alice"]}`)
	h.runSilent(t, `{"command":"assignTicket","username":"alice","timestamp":"2025-10-14","ticketID":0}`)
	h.runSilent(t, `{"command":"changeStatus","username":"alice","timestamp":"2025-10-15","ticketID":0}`)
	h.runSilent(t, `{"command":"changeStatus","username":"alice","timestamp":"2025-10-16","ticketID":0}`)

	got := h.runJSON(t, `{"command":"undoAssignTicket","username":"alice","timestamp":"2025-10-16","ticketID":0}`)
	want := `{"command":"undoAssignTicket","username":"alice","timestamp":"2025-10-16",` +
		`"error":"Only IN_PROGRESS tickets can be unassigned. Ticket 0 is CLOSED."}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	h.runSilent(t, `{"command":"undoChangeStatus","username":"alice","timestamp":"2025-10-17","ticketID":0}`)
	h.runSilent(t, `{"command":"undoChangeStatus","username":"alice","timestamp":"2025-10-17","ticketID":0}`)
	h.runSilent(t, `{"command":"undoAssignTicket","username":"alice","timestamp":"2025-10-17","ticketID":0}`)

	got = h.runJSON(t, `{"command":"search","username":"mona","timestamp":"2025-10-18",
		"filters":{"searchType":"TICKET","keywords":["db"]}}`)
	for _, fragment := range []string{`"id":0`, `"status":"OPEN"`, `"solvedAt":""`} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("search result %s lacks %s", got, fragment)
		}
	}
}

func TestMalformedFieldsAnswerWithError(t *testing.T) {
	h := newHarness(t)
	got := h.runJSON(t, `{"command":"assignTicket","username":"alice","timestamp":"2025-10-14","ticketID":"zero"}`)
	want := `{"command":"assignTicket","username":"alice","timestamp":"2025-10-14","error":"Malformed fields in command assignTicket."}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	// Role checks still come first.
	got = h.runJSON(t, `{"command":"assignTicket","username":"rita","timestamp":"2025-10-14","ticketID":"zero"}`)
	if !strings.Contains(got, "required role DEVELOPER") {
		t.Fatalf("got %s, want a permission error", got)
	}
}

func TestLostInvestorsStopsPhase(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"lostInvestors","username":"mona","timestamp":"2025-10-01"}`)
	if !h.svc.Phase.Stopped() {
		t.Fatal("expected run to be stopped")
	}
}

func TestPanicBecomesInternalError(t *testing.T) {
	h := newHarness(t)
	h.router.Register("explode", nil, func(context.Context, dto.Command) (*dto.Result, error) {
		panic("boom")
	})
	got := h.runJSON(t, `{"command":"explode","username":"mona","timestamp":"2025-10-01"}`)
	want := `{"command":"explode","username":"mona","timestamp":"2025-10-01","error":"internal error"}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	snap := h.metrics.Snapshot()
	if snap.Outcomes[observability.OutcomeError] != 1 || snap.Errors["explode|INTERNAL_ERROR"] != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestMetricsOutcomes(t *testing.T) {
	h := newHarness(t)
	h.runSilent(t, `{"command":"startTestingPhase","username":"mona","timestamp":"2025-10-01"}`)
	h.runSilent(t, `{"command":"dance","username":"mona","timestamp":"2025-10-01"}`)
	h.runJSON(t, `{"command":"viewTickets","username":"mona","timestamp":"2025-10-01"}`)
	h.runJSON(t, `{"command":"viewTickets","username":"ghost","timestamp":"2025-10-01"}`)

	snap := h.metrics.Snapshot()
	want := map[observability.Outcome]int64{
		observability.OutcomeSilent:  1,
		observability.OutcomeIgnored: 1,
		observability.OutcomeResult:  1,
		observability.OutcomeError:   1,
	}
	for outcome, n := range want {
		if snap.Outcomes[outcome] != n {
			t.Errorf("outcome %s = %d, want %d", outcome, snap.Outcomes[outcome], n)
		}
	}
	if snap.Errors["viewTickets|UNKNOWN_USER"] != 1 {
		t.Fatalf("errors = %+v", snap.Errors)
	}
}
