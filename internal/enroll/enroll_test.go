package enroll

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gestion-formations/internal/models"
)

// fakeService scripts the remote side of the flow.
type fakeService struct {
	formation    models.Formation
	participants []models.Participant
	failEnroll   map[int64]error // participantID -> error

	enrollCalls   []int64
	withdrawCalls []int64
	failWithdraw  error
}

func (f *fakeService) ListParticipants(context.Context) ([]models.Participant, error) {
	return f.participants, nil
}

func (f *fakeService) GetFormation(_ context.Context, id int64) (*models.Formation, error) {
	if id != f.formation.ID {
		return nil, fmt.Errorf("no formation %d", id)
	}
	cp := f.formation
	cp.Participants = append([]models.Participant(nil), f.formation.Participants...)
	return &cp, nil
}

func (f *fakeService) Enroll(_ context.Context, participantID, formationID int64) error {
	f.enrollCalls = append(f.enrollCalls, participantID)
	if err := f.failEnroll[participantID]; err != nil {
		return err
	}
	f.formation.Participants = append(f.formation.Participants, models.Participant{ID: participantID})
	return nil
}

func (f *fakeService) Withdraw(_ context.Context, participantID, formationID int64) error {
	f.withdrawCalls = append(f.withdrawCalls, participantID)
	return f.failWithdraw
}

func p(id int64, nom string) models.Participant {
	return models.Participant{ID: id, Nom: nom}
}

func newFake() *fakeService {
	return &fakeService{
		formation: models.Formation{
			ID:           9,
			Titre:        "Go avancé",
			Participants: []models.Participant{p(1, "Ben Salah"), p(2, "Trabelsi")},
		},
		participants: []models.Participant{
			p(1, "Ben Salah"), p(2, "Trabelsi"), p(3, "Gharbi"), p(4, "Mansour"), p(5, "Khelifi"),
		},
		failEnroll: map[int64]error{},
	}
}

func TestLoadCandidates_SetDifference(t *testing.T) {
	svc := newFake()
	c, err := LoadCandidates(context.Background(), svc, 9)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Available) != 3 {
		t.Fatalf("expected 3 available, got %d", len(c.Available))
	}
	for _, avail := range c.Available {
		if c.Enrolled[avail.ID] {
			t.Errorf("available participant %d is already enrolled", avail.ID)
		}
	}
	if !c.Enrolled[1] || !c.Enrolled[2] {
		t.Error("enrolled ids missing from the enrolled set")
	}
}

func TestLoadCandidates_RecomputedPerOpen(t *testing.T) {
	svc := newFake()
	ctx := context.Background()

	first, err := LoadCandidates(ctx, svc, 9)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sel := NewSelection(3)
	if out := Confirm(ctx, svc, first, sel); !out.Complete() {
		t.Fatalf("confirm: %+v", out)
	}

	// Re-opening the dialog must reflect the new membership.
	second, err := LoadCandidates(ctx, svc, 9)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(second.Available) != 2 {
		t.Fatalf("expected 2 available after enrollment, got %d", len(second.Available))
	}
	for _, avail := range second.Available {
		if avail.ID == 3 {
			t.Fatal("freshly enrolled participant still listed as available")
		}
	}
}

func TestSelection_ToggleIdempotent(t *testing.T) {
	sel := NewSelection(4, 3)
	sel.Toggle(5)
	sel.Toggle(5)
	ids := sel.IDs()
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 3 {
		t.Fatalf("double toggle must restore the set, got %v", ids)
	}
	if sel.Contains(5) {
		t.Fatal("5 should not be selected")
	}
}

func TestSelection_OrderPreserved(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(5)
	sel.Toggle(3)
	sel.Toggle(4)
	sel.Toggle(3) // deselect
	ids := sel.IDs()
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 4 {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestConfirm_EmptySelectionRejected(t *testing.T) {
	svc := newFake()
	c, _ := LoadCandidates(context.Background(), svc, 9)
	out := Confirm(context.Background(), svc, c, NewSelection())
	if !errors.Is(out.Err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", out.Err)
	}
	if len(svc.enrollCalls) != 0 {
		t.Fatal("no network call may be issued for an empty selection")
	}
}

func TestConfirm_SequentialStopAtFirstFailure(t *testing.T) {
	svc := newFake()
	boom := errors.New("boom")
	svc.failEnroll[4] = boom

	c, _ := LoadCandidates(context.Background(), svc, 9)
	sel := NewSelection(3, 4, 5)
	out := Confirm(context.Background(), svc, c, sel)

	// Write order is selection order, and 5 is never attempted.
	if len(svc.enrollCalls) != 2 || svc.enrollCalls[0] != 3 || svc.enrollCalls[1] != 4 {
		t.Fatalf("unexpected write sequence: %v", svc.enrollCalls)
	}
	if !errors.Is(out.Err, boom) || out.FailedID != 4 {
		t.Fatalf("unexpected outcome error: %+v", out)
	}
	if out.Requested != 3 || len(out.Added) != 1 || out.Added[0].ID != 3 {
		t.Fatalf("expected 1 of 3 added, got %+v", out)
	}
	if !out.Partial() || out.Complete() {
		t.Fatal("outcome should be a partial success")
	}

	// Local list reflects exactly the writes that landed: 3 added, not 5.
	want := map[int64]bool{1: true, 2: true, 3: true}
	if len(c.Formation.Participants) != 3 {
		t.Fatalf("expected 3 local participants, got %d", len(c.Formation.Participants))
	}
	for _, pp := range c.Formation.Participants {
		if !want[pp.ID] {
			t.Errorf("unexpected local participant %d", pp.ID)
		}
	}
}

func TestConfirm_NoDuplicateInsertion(t *testing.T) {
	svc := newFake()
	c, _ := LoadCandidates(context.Background(), svc, 9)
	// Force a selection of an id that is already in the local list.
	sel := NewSelection(1, 3)
	out := Confirm(context.Background(), svc, c, sel)
	if out.Err != nil {
		t.Fatalf("confirm: %v", out.Err)
	}
	seen := map[int64]int{}
	for _, pp := range c.Formation.Participants {
		seen[pp.ID]++
	}
	if seen[1] != 1 {
		t.Fatalf("participant 1 duplicated: %d entries", seen[1])
	}
	if seen[3] != 1 {
		t.Fatalf("participant 3 missing or duplicated: %d entries", seen[3])
	}
}

func TestConfirm_Scenario_TwoOfFive(t *testing.T) {
	// Formation with 2 enrolled out of 5 total: available has exactly 3;
	// selecting 2 issues both writes in order and grows the local list by 2.
	svc := newFake()
	c, err := LoadCandidates(context.Background(), svc, 9)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Available) != 3 {
		t.Fatalf("expected 3 available, got %d", len(c.Available))
	}

	sel := NewSelection(3, 5)
	before := len(c.Formation.Participants)
	out := Confirm(context.Background(), svc, c, sel)
	if !out.Complete() {
		t.Fatalf("confirm: %+v", out)
	}
	if len(svc.enrollCalls) != 2 || svc.enrollCalls[0] != 3 || svc.enrollCalls[1] != 5 {
		t.Fatalf("unexpected write sequence: %v", svc.enrollCalls)
	}
	if got := len(c.Formation.Participants); got != before+2 {
		t.Fatalf("expected participant count %d, got %d", before+2, got)
	}
}

func TestRemove_Success(t *testing.T) {
	svc := newFake()
	c, _ := LoadCandidates(context.Background(), svc, 9)
	if err := Remove(context.Background(), svc, c.Formation, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Formation.Participants) != 1 || c.Formation.Participants[0].ID != 1 {
		t.Fatalf("unexpected local list: %+v", c.Formation.Participants)
	}
	if len(svc.withdrawCalls) != 1 || svc.withdrawCalls[0] != 2 {
		t.Fatalf("unexpected withdraw calls: %v", svc.withdrawCalls)
	}
}

func TestRemove_FailureLeavesStateUntouched(t *testing.T) {
	svc := newFake()
	svc.failWithdraw = errors.New("boom")
	c, _ := LoadCandidates(context.Background(), svc, 9)
	if err := Remove(context.Background(), svc, c.Formation, 2); err == nil {
		t.Fatal("expected error")
	}
	if len(c.Formation.Participants) != 2 {
		t.Fatalf("local list must be untouched on failure, got %+v", c.Formation.Participants)
	}
}
